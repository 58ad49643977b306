package dto

type OfferMappingsResponse struct {
	Result OfferMappingsResult `json:"result"`
}

type OfferMappingsResult struct {
	OfferMappingEntries []OfferMappingEntry `json:"offerMappingEntries"`
	Paging              Paging              `json:"paging"`
}

type OfferMappingEntry struct {
	Offer Offer `json:"offer"`
}

type Offer struct {
	ShopSku string `json:"shopSku"`
}

type Paging struct {
	NextPageToken string `json:"nextPageToken"`
}

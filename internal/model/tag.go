package model

// ContractTag is a display-oriented annotation for one pool contract. Field
// names match the tag submission columns.
type ContractTag struct {
	ContractAddress string `json:"Contract Address"`
	PublicNameTag   string `json:"Public Name Tag"`
	ProjectName     string `json:"Project Name"`
	Website         string `json:"UI/Website Link"`
	PublicNote      string `json:"Public Note"`
}

package models

// Industry is a named industry that companies can be associated with.
type Industry struct {
	Code     string `json:"code"`
	Industry string `json:"industry"`
}

// Association links a company to an industry.
type Association struct {
	CompCode string `json:"comp_code"`
	IndCode  string `json:"ind_code"`
}

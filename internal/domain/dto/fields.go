package dto

type FieldsResponse struct {
	OK    bool   `json:"ok"`
	Name  string `json:"nome,omitempty"`
	Type  string `json:"tipo,omitempty"`
	Text  string `json:"texto,omitempty"`
	Error string `json:"erro,omitempty"`
}

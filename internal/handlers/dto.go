package handlers

// somente os campos do contrato; status inicial e timestamps são do servidor
type QuoteCreateDTO struct {
	CNPJ       string  `json:"cnpj"`
	Numero     string  `json:"numero"`
	Descricao  string  `json:"descricao"`
	ValorTotal float64 `json:"valor_total"`
}

// Patch de status; ponteiro distingue "omitido" de "informado".
type QuoteStatusPatchDTO struct {
	Status *string `json:"status,omitempty"`
}

type SelectLevelsDTO struct {
	Niveis []string `json:"niveis"`
}

type ApproveDTO struct {
	UsuarioID  string  `json:"usuario_id"`
	Observacao *string `json:"observacao,omitempty"`
}

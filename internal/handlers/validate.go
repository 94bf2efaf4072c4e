package handlers

import "errors"

func validateQuoteCreateDTO(d QuoteCreateDTO) error {
	if d.CNPJ == "" {
		return errors.New("cnpj is required")
	}
	if d.Numero == "" {
		return errors.New("numero is required")
	}
	if d.ValorTotal < 0 {
		return errors.New("valor_total must be >= 0")
	}
	return nil
}

func validateStatusPatchDTO(d QuoteStatusPatchDTO) error {
	if d.Status == nil || *d.Status == "" {
		return errors.New("status is required")
	}
	return nil
}

func validateSelectLevelsDTO(d SelectLevelsDTO) error {
	if len(d.Niveis) == 0 {
		return errors.New("niveis is required")
	}
	return nil
}

func validateApproveDTO(d ApproveDTO) error {
	if d.UsuarioID == "" {
		return errors.New("usuario_id is required")
	}
	return nil
}

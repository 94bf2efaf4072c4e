package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/compras-sa/aprovacao-cotacao/internal/models"
	"github.com/compras-sa/aprovacao-cotacao/internal/repository"
	"github.com/compras-sa/aprovacao-cotacao/internal/utils"
)

//go:embed seeds/usuarios.json
var usuariosJSON []byte

type seedItem struct {
	ID     string   `json:"id"`
	Nome   string   `json:"nome"`
	Email  string   `json:"email"`
	CNPJ   string   `json:"cnpj"`
	Grupos []string `json:"grupos"`
}

// Idempotente: cria se não existir; se já existir, ignora.
func SeedUsuarios(ctx context.Context, users *repository.UserRepository, memberships *repository.MembershipRepository, log *slog.Logger) error {
	var items []seedItem
	if err := json.Unmarshal(usuariosJSON, &items); err != nil {
		return err
	}

	for _, s := range items {
		cnpj := utils.SanitizeCNPJ(s.CNPJ)
		if cnpj != "" && !utils.ValidateCNPJ(cnpj) {
			log.Warn("seed_skip_invalid_cnpj", "raw", s.CNPJ, "usuario", s.ID)
			continue
		}

		u := models.User{ID: s.ID, Nome: s.Nome, Email: s.Email}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := users.Create(ictx, &u)
		cancel()
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				log.Info("seed_usuario_exists", "id", s.ID)
			} else {
				return err
			}
		} else {
			log.Info("seed_usuario_created", "id", s.ID)
		}

		for _, grupo := range s.Grupos {
			m := models.Membership{
				// _id determinístico garante a idempotência do vínculo
				ID:        fmt.Sprintf("%s|%s|%s", u.ID, grupo, cnpj),
				UsuarioID: u.ID,
				Grupo:     grupo,
				CNPJ:      cnpj,
			}
			ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := memberships.Create(ictx, &m)
			cancel()
			if err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					continue
				}
				return err
			}
			log.Info("seed_vinculo_created", "usuario", u.ID, "grupo", grupo)
		}
	}

	log.Info("seed_usuarios_done", "count", len(items))
	return nil
}

package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrDuplicate = errors.New("duplicate key")

// traduz violação de índice único (code 11000) para o sentinela
func mapWriteError(err error) error {
	if we, ok := err.(mongo.WriteException); ok {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return ErrDuplicate
			}
		}
	}
	return err
}

package telegram

import (
	"fx-rates/models/entities"
	"fx-rates/utils/databases"
)

type Repository interface {
	Subscribe(user entities.TelegramUser) (bool, error)
	Unsubscribe(chatID int64) (bool, error)
	FetchAll() ([]entities.TelegramUser, error)
}

type Impl struct {
	db databases.SqlConnection
}

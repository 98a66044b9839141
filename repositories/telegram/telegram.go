package telegram

import (
	"errors"
	"fmt"

	"fx-rates/models/entities"
	"fx-rates/utils/databases"

	"gorm.io/gorm"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) FetchAll() ([]entities.TelegramUser, error) {
	var users []entities.TelegramUser
	result := repo.db.GetDB().Order("subscribed_at").Find(&users)

	return users, result.Error
}

// Subscribe reports false when the chat was already subscribed.
func (repo *Impl) Subscribe(user entities.TelegramUser) (bool, error) {
	var existingUser entities.TelegramUser

	result := repo.db.GetDB().Where("chat_id = ?", user.ChatID).First(&existingUser)
	if result.Error == nil {
		return false, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check subscription: %w", result.Error)
	}

	if err := repo.db.GetDB().Create(&user).Error; err != nil {
		return false, fmt.Errorf("failed to create subscription: %w", err)
	}
	return true, nil
}

// Unsubscribe reports false when the chat was not subscribed.
func (repo *Impl) Unsubscribe(chatID int64) (bool, error) {
	result := repo.db.GetDB().Delete(&entities.TelegramUser{}, chatID)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete subscription: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

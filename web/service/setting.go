package service

import (
	"github.com/tiendaweb/tienda/database"
	"github.com/tiendaweb/tienda/database/model"
	"github.com/tiendaweb/tienda/util/random"
)

const secretKey = "secret"

// SettingService stores server-generated values that must survive restarts.
type SettingService struct{}

// GetSecret returns the session signing secret, generating and persisting one on first use.
func (s *SettingService) GetSecret() ([]byte, error) {
	secret, err := s.getString(secretKey)
	if database.IsNotFound(err) {
		secret = random.Seq(32)
		if err := s.saveSetting(secretKey, secret); err != nil {
			return nil, err
		}
		return []byte(secret), nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(secret), nil
}

func (s *SettingService) getString(key string) (string, error) {
	setting := &model.Setting{}
	err := database.GetDB().Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{Key: key, Value: value}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

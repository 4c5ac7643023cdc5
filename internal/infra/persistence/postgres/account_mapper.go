package postgres

import (
	"bytes"
	"encoding/json"

	"accounts/internal/domain/entity"
	"accounts/internal/errors"
	"accounts/internal/infra/persistence/model"
)

func toAccountModel(user *entity.User) (*model.AccountModel, error) {
	row := &model.AccountModel{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}

	if user.Age != nil {
		age, err := json.Marshal(user.Age)
		if err != nil {
			return nil, errors.Wrapf(err, "encode age of %q", user.Email)
		}
		ageText := string(age)
		row.Age = &ageText
	}

	if len(user.Attributes) > 0 {
		attributes, err := json.Marshal(user.Attributes)
		if err != nil {
			return nil, errors.Wrapf(err, "encode attributes of %q", user.Email)
		}
		attributesText := string(attributes)
		row.Attributes = &attributesText
	}

	return row, nil
}

func toUserDomain(row *model.AccountModel) (*entity.User, error) {
	user := &entity.User{
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
	}

	if row.Age != nil {
		if err := decodeJSON(*row.Age, &user.Age); err != nil {
			return nil, errors.Wrapf(err, "decode age of %q", row.Email)
		}
		if user.Age == nil {
			user.Age = entity.NullAge
		}
	}

	if row.Attributes != nil {
		if err := decodeJSON(*row.Attributes, &user.Attributes); err != nil {
			return nil, errors.Wrapf(err, "decode attributes of %q", row.Email)
		}
		if len(user.Attributes) == 0 {
			user.Attributes = nil
		}
	}

	return user, nil
}

// decodeJSON keeps numbers as json.Number, like the document stores do.
func decodeJSON(text string, target any) error {
	decoder := json.NewDecoder(bytes.NewReader([]byte(text)))
	decoder.UseNumber()

	return errors.WithStack(decoder.Decode(target))
}

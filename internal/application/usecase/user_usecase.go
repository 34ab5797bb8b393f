package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// UserUseCase casos de uso CRUD de usuarios. El alta pasa por el registro
// (application/auth); aquí viven lectura, actualización y borrado.
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, log: log}
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List() ([]dto.UserResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		uc.log.Error().Err(err).Str("op", "user.list").Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return items, nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	if !entity.IsValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "user.get").Str("id", id).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	if user == nil {
		return nil, nil
	}
	return ToUserResponse(user), nil
}

// Update aplica una actualización parcial. Si llega password se rehashea.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !entity.IsValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "user.update").Str("id", id).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	if user == nil {
		return nil, nil
	}
	if in.Email != nil && *in.Email != user.Email {
		other, err := uc.repo.GetByEmail(*in.Email)
		if err != nil {
			uc.log.Error().Err(err).Str("op", "user.update").Str("id", id).Msg("fallo de almacenamiento")
			return nil, domain.ErrUnavailable
		}
		if other != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = *in.Name
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrEmailAlreadyExists
		}
		uc.log.Error().Err(err).Str("op", "user.update").Str("id", id).Msg("fallo de almacenamiento")
		return nil, domain.ErrUnavailable
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(id string) error {
	if !entity.IsValidID(id) {
		return domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "user.delete").Str("id", id).Msg("fallo de almacenamiento")
		return domain.ErrUnavailable
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		uc.log.Error().Err(err).Str("op", "user.delete").Str("id", id).Msg("fallo de almacenamiento")
		return domain.ErrUnavailable
	}
	return nil
}

// ToUserResponse convierte la entidad a DTO, sin hash de contraseña.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

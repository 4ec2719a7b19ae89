package authhandler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"noc-portal-backend/config"
	"noc-portal-backend/db"
	usersstore "noc-portal-backend/lib/users/store"
	authutils "noc-portal-backend/lib/utils/auth-utils"
	"noc-portal-backend/models"
	authapimodels "noc-portal-backend/models/api/auth"
	dbmodels "noc-portal-backend/models/db"
)

type Provider interface {
	Login(email, password string) (authapimodels.JWTResponse, error)
	RefreshToken(refreshToken string) (authapimodels.JWTResponse, error)
	Register(data authapimodels.RegisterRequest) (authapimodels.UserView, error)
	Me(ctx *fiber.Ctx) (authapimodels.UserView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore:   usersstore.NewInstance(db.DB),
		queryTimeout: time.Second * time.Duration(config.Conf.Database.QueryTimeoutSec),
	}
}

type impl struct {
	usersStore   usersstore.Provider
	queryTimeout time.Duration
}

func (i impl) storeCtx() (context.Context, context.CancelFunc) {
	timeout := i.queryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

var errUnauthorized = errors.New("неверная почта или пароль")

func (i impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", email)
	ctx, cancel := i.storeCtx()
	defer cancel()
	user, err := i.usersStore.FindByEmail(ctx, email)
	if err != nil {
		logger.WithError(err).Error("Ошибка поиска пользователя")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		return authapimodels.JWTResponse{}, errUnauthorized
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return authapimodels.JWTResponse{}, errUnauthorized
	}
	return i.issueTokens(*user)
}

func (i impl) RefreshToken(refreshToken string) (authapimodels.JWTResponse, error) {
	claims, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, errUnauthorized
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return authapimodels.JWTResponse{}, errUnauthorized
	}
	ctx, cancel := i.storeCtx()
	defer cancel()
	user, err := i.usersStore.GetByID(ctx, sub)
	if err != nil {
		log.WithField("user_id", sub).WithError(err).Error("Ошибка получения пользователя")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive {
		return authapimodels.JWTResponse{}, errUnauthorized
	}
	return i.issueTokens(*user)
}

func (i impl) Register(data authapimodels.RegisterRequest) (authapimodels.UserView, error) {
	logger := log.WithField("email", data.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("Ошибка хеширования пароля")
		return authapimodels.UserView{}, errors.New("не удалось зарегистрировать пользователя")
	}
	rec := dbmodels.PortalUser{
		Email:        data.Email,
		PasswordHash: string(hash),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Role:         data.Role,
		IsActive:     true,
	}
	ctx, cancel := i.storeCtx()
	defer cancel()
	id, err := i.usersStore.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return authapimodels.UserView{}, models.NewValidationError("пользователь с такой почтой уже зарегистрирован")
		}
		logger.WithError(err).Error("Ошибка создания пользователя")
		return authapimodels.UserView{}, err
	}
	user, err := i.usersStore.GetByID(ctx, id)
	if err != nil || user == nil {
		return authapimodels.UserView{}, errors.New("не удалось получить созданного пользователя")
	}
	logger.WithField("user_id", id).Info("Зарегистрирован пользователь портала")
	return authapimodels.UserConvert(*user), nil
}

func (i impl) Me(ctx *fiber.Ctx) (authapimodels.UserView, error) {
	claims := authutils.GetClaims(ctx)
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return authapimodels.UserView{}, errUnauthorized
	}
	storeCtx, cancel := i.storeCtx()
	defer cancel()
	user, err := i.usersStore.GetByID(storeCtx, sub)
	if err != nil {
		return authapimodels.UserView{}, err
	}
	if user == nil {
		return authapimodels.UserView{}, errUnauthorized
	}
	return authapimodels.UserConvert(*user), nil
}

func (i impl) issueTokens(user dbmodels.PortalUser) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка выпуска токена")
	}
	refresh, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка выпуска refresh токена")
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refresh,
	}, nil
}

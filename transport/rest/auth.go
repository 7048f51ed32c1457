package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/identity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/pkg"
)

const (
	urlUserInfo     = "https://www.googleapis.com/oauth2/v2/userinfo"
	sessionStateKey = "state"
)

type authService interface {
	GenerateToken(email string) (string, error)
	ParseToken(token string) (string, error)
}

type userService interface {
	Signup(ctx context.Context, email, username, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
	LoginExternal(ctx context.Context, email, username string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type AuthHandler interface {
	Signup(ctx echo.Context) error
	Login(ctx echo.Context) error
	Logout(ctx echo.Context) error
	Me(ctx echo.Context) error
	RequestPasswordReset(ctx echo.Context) error
	ConfirmPasswordReset(ctx echo.Context) error
	GoogleLogin(ctx echo.Context) error
	GoogleCallback(ctx echo.Context) error
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authHandler struct {
	logger *slog.Logger

	oauthConfig *oauth2.Config
	userInfoURL string

	auth authService
	user userService
}

func NewAuth(logger *slog.Logger, conf *config.Config, auth authService, user userService) AuthHandler {
	oauthConfig := &oauth2.Config{
		ClientID:     conf.GoogleOAuth.ClientID,
		ClientSecret: conf.GoogleOAuth.ClientSecret,

		RedirectURL: conf.GoogleOAuth.RedirectURL,

		Scopes:   conf.GoogleOAuth.Scopes,
		Endpoint: google.Endpoint,
	}

	return &authHandler{
		logger:      logger.With("component", "auth_handler"),
		oauthConfig: oauthConfig,
		userInfoURL: urlUserInfo,
		auth:        auth,
		user:        user,
	}
}

func (that *authHandler) Signup(ctx echo.Context) error {
	var req signupRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
	}

	user, err := that.user.Signup(ctx.Request().Context(), req.Email, req.Username, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	return that.issueToken(ctx, http.StatusCreated, user)
}

func (that *authHandler) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
	}

	user, err := that.user.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	return that.issueToken(ctx, http.StatusOK, user)
}

// Logout drops the token from the session cookie.
func (that *authHandler) Logout(ctx echo.Context) error {
	userSession, err := session.Get(sessionName, ctx)
	if err != nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	delete(userSession.Values, sessionTokenKey)
	userSession.Options.MaxAge = -1

	if err = userSession.Save(ctx.Request(), ctx.Response()); err != nil {
		that.logger.Error("failed to clear session", "method", "Logout", "error", err)
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (that *authHandler) Me(ctx echo.Context) error {
	email, ok := identity.FromContext(ctx.Request().Context())
	if !ok {
		return writeError(ctx, apperror.ErrUnauthorized)
	}

	user, err := that.user.GetUserByEmail(ctx.Request().Context(), email)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, user)
}

func (that *authHandler) RequestPasswordReset(ctx echo.Context) error {
	var req resetRequest
	if err := ctx.Bind(&req); err != nil || req.Email == "" {
		return writeError(ctx, apperror.ErrBadRequest)
	}

	if err := that.user.RequestPasswordReset(ctx.Request().Context(), req.Email); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

func (that *authHandler) ConfirmPasswordReset(ctx echo.Context) error {
	var req resetConfirmRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
	}

	if err := that.user.ResetPassword(ctx.Request().Context(), req.Token, req.Password); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (that *authHandler) GoogleLogin(ctx echo.Context) error {
	userSession, err := session.Get(sessionName, ctx)
	if err != nil {
		that.logger.Error("failed to get session", "method", "GoogleLogin", "error", err)
		return writeError(ctx, err)
	}

	stateToken := pkg.GenerateNewSessionID()
	userSession.Values[sessionStateKey] = stateToken

	if err = userSession.Save(ctx.Request(), ctx.Response()); err != nil {
		that.logger.Error("failed to save session", "method", "GoogleLogin", "error", err)
		return writeError(ctx, err)
	}

	// generate authURL for authorization with session token.
	authURL := that.oauthConfig.AuthCodeURL(stateToken)
	return ctx.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (that *authHandler) GoogleCallback(ctx echo.Context) error {
	log := that.logger.With("method", "GoogleCallback")

	// get state from session.
	userSession, err := session.Get(sessionName, ctx)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return writeError(ctx, err)
	}

	// check existence of the state and it`s type.
	storedState, ok := userSession.Values[sessionStateKey].(string)
	if !ok || storedState == "" {
		log.Warn("state not found in session")
		return writeError(ctx, fmt.Errorf("%w: invalid session state", apperror.ErrBadRequest))
	}

	// check if state matches.
	if state := ctx.QueryParam("state"); state != storedState {
		log.Warn("invalid OAuth state", "expected", storedState, "got", state)
		return writeError(ctx, fmt.Errorf("%w: invalid OAuth state", apperror.ErrBadRequest))
	}

	delete(userSession.Values, sessionStateKey)

	// exchange code for token.
	token, err := that.oauthConfig.Exchange(ctx.Request().Context(), ctx.QueryParam("code"))
	if err != nil {
		log.Error("failed to exchange code for token", "error", err)
		return writeError(ctx, fmt.Errorf("%w: code exchange failed", apperror.ErrUnauthorized))
	}

	// getting user information
	client := that.oauthConfig.Client(ctx.Request().Context(), token)
	userInfo, err := that.getUserInfo(ctx.Request().Context(), client)
	if err != nil {
		log.Error("failed to get user info", "error", err)
		return writeError(ctx, err)
	}

	user, err := that.user.LoginExternal(ctx.Request().Context(), userInfo.Email, userInfo.Name)
	if err != nil {
		log.Error("failed to create or update user", "error", err)
		return writeError(ctx, err)
	}

	return that.issueToken(ctx, http.StatusOK, user)
}

// issueToken signs a token for the user, keeps it in the session cookie and
// returns it in the body for clients that send it as a bearer token.
func (that *authHandler) issueToken(ctx echo.Context, status int, user *entity.User) error {
	jwtToken, err := that.auth.GenerateToken(user.Email)
	if err != nil {
		that.logger.Error("failed to generate JWT token", "error", err)
		return writeError(ctx, err)
	}

	userSession, err := session.Get(sessionName, ctx)
	if err == nil {
		userSession.Values[sessionTokenKey] = jwtToken
		if err = userSession.Save(ctx.Request(), ctx.Response()); err != nil {
			that.logger.Warn("failed to save session", "error", err)
		}
	}

	return ctx.JSON(status, tokenResponse{Token: jwtToken, User: user})
}

func (that *authHandler) getUserInfo(ctx context.Context, client *http.Client) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, that.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user info request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: status %d", resp.StatusCode)
	}

	var userInfo googleUserInfo
	if err = json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	if userInfo.Email == "" {
		return nil, fmt.Errorf("%w: provider returned no email", apperror.ErrUnauthorized)
	}

	return &userInfo, nil
}

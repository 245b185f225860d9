package services

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Juan-Devgo/Clothes/internal/cms"
	"github.com/Juan-Devgo/Clothes/internal/models"
	"github.com/Juan-Devgo/Clothes/internal/paths"
	"github.com/Juan-Devgo/Clothes/internal/repositories"
	"github.com/Juan-Devgo/Clothes/internal/utils"
	"github.com/Juan-Devgo/Clothes/internal/validation"
)

// MaxInvalidCodeAttempts aborts a verification flow on the third rejected
// code: the pending record and its cookie are destroyed and the user is sent
// back to the start of the flow.
const MaxInvalidCodeAttempts = 3

// Effects tells the handler which cookies to touch after a form action.
// Services never see the HTTP layer directly.
type Effects struct {
	SetSession   string
	SessionTTL   time.Duration
	ClearSession bool
	SetPending   string
	ClearPending bool
}

type AuthService struct {
	Client     *cms.Client
	Emails     EmailService
	Pending    repositories.VerificationRepository
	Cipher     *utils.Cipher
	SessionTTL time.Duration
}

func NewAuthService(client *cms.Client, emails EmailService, pending repositories.VerificationRepository, cipher *utils.Cipher, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		Client:     client,
		Emails:     emails,
		Pending:    pending,
		Cipher:     cipher,
		SessionTTL: sessionTTL,
	}
}

// ---------- login / session ----------

type loginResponse struct {
	JWT  string       `json:"jwt"`
	User *models.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest, from string) (*models.FormState, Effects, error) {
	if errs := validation.Struct(req); errs != nil {
		return models.ValidationFailed(errs, req), Effects{}, nil
	}

	res, err := s.Client.PostPublic(ctx, cms.PathAuthLocal, req)
	if err != nil {
		return nil, Effects{}, err
	}
	if !res.Success {
		log.Printf("[auth][login] rejected identifier=%q status=%d", req.Identifier, res.Status)
		return models.CmsFailed("Error en el inicio de sesión.", &models.CmsError{Status: res.Status, Message: res.Message}), Effects{}, nil
	}

	var lr loginResponse
	if err := res.Decode(&lr); err != nil || lr.JWT == "" {
		return nil, Effects{}, errors.New("auth: malformed login response")
	}

	redirect := from
	if redirect == "" {
		redirect = paths.ControlPanel
	}
	log.Printf("[auth][login] success identifier=%q", req.Identifier)
	return &models.FormState{
			Success:  true,
			Message:  "Inicio de sesión exitoso.",
			User:     lr.User,
			Redirect: redirect,
		}, Effects{
			SetSession: lr.JWT,
			SessionTTL: s.sessionTTL(lr.JWT),
		}, nil
}

// sessionTTL caps the configured cookie lifetime at the token's own expiry.
// The CMS owns signature verification; we only read the exp claim.
func (s *AuthService) sessionTTL(token string) time.Duration {
	ttl := s.SessionTTL
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ttl
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ttl
	}
	if until := time.Until(exp.Time); until > 0 && until < ttl {
		return until
	}
	return ttl
}

// CurrentUser validates the session token against the CMS. A rejected token
// clears the session cookie.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, *models.CmsError, Effects, error) {
	if token == "" {
		return nil, &models.CmsError{Status: http.StatusUnauthorized, Message: "No hay sesión activa"}, Effects{}, nil
	}
	res, err := s.Client.Get(ctx, cms.PathUsersMe, token)
	if err != nil {
		return nil, nil, Effects{}, err
	}
	if !res.Success {
		return nil, &models.CmsError{Status: res.Status, Message: "Token inválido"}, Effects{ClearSession: true}, nil
	}
	var user models.User
	if err := res.Decode(&user); err != nil {
		return nil, nil, Effects{}, err
	}
	return &user, nil, Effects{}, nil
}

// ---------- registration flow ----------

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.FormState, Effects, error) {
	if errs := validation.Struct(req); errs != nil {
		return models.ValidationFailed(errs, req), Effects{}, nil
	}

	// The duplicate-email check always precedes email dispatch: no code is
	// mailed for an address that already has an account.
	exists, err := s.userExists(ctx, req.Email)
	if err != nil {
		return nil, Effects{}, err
	}
	if exists {
		log.Printf("[auth][register] duplicate email=%q", req.Email)
		return models.CmsFailed("El correo electrónico ya está registrado.", &models.CmsError{Status: http.StatusConflict}), Effects{}, nil
	}

	code, codeHash, err := s.newCode()
	if err != nil {
		return nil, Effects{}, err
	}
	if err := s.Emails.SendRegisterCode(ctx, req.Email, req.Username, code); err != nil {
		var de *DispatchError
		if errors.As(err, &de) {
			log.Printf("[auth][register] email dispatch failed email=%q status=%d", req.Email, de.Status)
			return models.CmsFailed("Error enviando el correo de verificación.", &models.CmsError{Status: de.Status, Message: de.Message}), Effects{}, nil
		}
		return nil, Effects{}, err
	}

	encrypted, err := s.Cipher.Encrypt(req.Password)
	if err != nil {
		return nil, Effects{}, err
	}
	token, err := s.createPending(&models.PendingVerification{
		Type:        models.FlowAuthRegister,
		Email:       req.Email,
		Username:    req.Username,
		PasswordEnc: encrypted,
		CodeHash:    codeHash,
	})
	if err != nil {
		return nil, Effects{}, err
	}

	log.Printf("[auth][register] pending verification created email=%q", req.Email)
	return &models.FormState{
		Success:  true,
		Message:  "Datos válidos.",
		Data:     req,
		Redirect: paths.RegisterVerify,
	}, Effects{SetPending: token}, nil
}

func (s *AuthService) VerifyRegistration(ctx context.Context, pendingToken string, req models.VerifyCodeRequest) (*models.FormState, Effects, error) {
	// Code format is checked before anything touches the network.
	if errs := validation.Struct(req); errs != nil {
		return models.ValidationFailed(errs, req), Effects{}, nil
	}

	pv, expired := s.loadPending(pendingToken, models.FlowAuthRegister)
	if expired != nil {
		return expiredState("Su sesión de verificación expiró. Debe registrarse de nuevo.", paths.Register), Effects{ClearPending: true}, nil
	}

	state, effects, done, err := s.checkCode(ctx, pv, req.Code, true, paths.Register,
		"Ha agotado sus intentos. Debe registrarse de nuevo.",
		"Error de servidor. Intente registrarse de nuevo.")
	if err != nil {
		return nil, Effects{}, err
	}
	if done {
		return state, effects, nil
	}

	password, err := s.Cipher.Decrypt(pv.PasswordEnc)
	if err != nil {
		// Unreadable stored password: the flow cannot complete, restart.
		log.Printf("[auth][verify] stored password unreadable email=%q err=%v", pv.Email, err)
		s.destroyPending(pv)
		return expiredState("Error de servidor. Intente registrarse de nuevo.", paths.Register), Effects{ClearPending: true}, nil
	}

	res, err := s.Client.PostPublic(ctx, cms.PathAuthLocalRegister, map[string]string{
		"username": pv.Username,
		"email":    pv.Email,
		"password": password,
	})
	if err != nil {
		return nil, Effects{}, err
	}
	if !res.Success {
		switch res.Status {
		case http.StatusConflict:
			// Registration completed concurrently elsewhere.
			log.Printf("[auth][verify] already registered email=%q", pv.Email)
			s.destroyPending(pv)
			return &models.FormState{
				Success:   false,
				Message:   "Usted ya está registrado. Redirigiendo a inicio de sesión...",
				CmsErrors: &models.CmsError{Status: http.StatusConflict},
				Redirect:  paths.Login,
			}, Effects{ClearPending: true}, nil
		case http.StatusTooManyRequests:
			return models.CmsFailed("Ha realizado muchos intentos, intente más tarde.", &models.CmsError{Status: res.Status}), Effects{}, nil
		default:
			log.Printf("[auth][verify] account creation failed email=%q status=%d", pv.Email, res.Status)
			s.destroyPending(pv)
			return &models.FormState{
				Success:   false,
				Message:   "Error de servidor. Intente registrarse de nuevo.",
				CmsErrors: &models.CmsError{Status: http.StatusInternalServerError, Message: res.Message},
				Redirect:  paths.Register,
			}, Effects{ClearPending: true}, nil
		}
	}

	s.destroyPending(pv)
	log.Printf("[auth][verify] account created email=%q", pv.Email)
	return &models.FormState{
		Success:  true,
		Message:  "¡Cuenta creada exitosamente!",
		Redirect: paths.Login,
	}, Effects{ClearPending: true}, nil
}

// ---------- password reset flow ----------

func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (*models.FormState, Effects, error) {
	if errs := validation.Struct(req); errs != nil {
		return models.ValidationFailed(errs, req), Effects{}, nil
	}

	username, exists, err := s.lookupUsername(ctx, req.Email)
	if err != nil {
		return nil, Effects{}, err
	}
	if !exists {
		log.Printf("[auth][reset] unknown email=%q", req.Email)
		return models.CmsFailed("Usuario no encontrado. Verifique su correo electrónico.", &models.CmsError{Status: http.StatusNotFound}), Effects{}, nil
	}

	code, codeHash, err := s.newCode()
	if err != nil {
		return nil, Effects{}, err
	}
	if err := s.Emails.SendResetCode(ctx, req.Email, username, code); err != nil {
		var de *DispatchError
		if errors.As(err, &de) {
			log.Printf("[auth][reset] email dispatch failed email=%q status=%d", req.Email, de.Status)
			return models.CmsFailed("Error enviando el código de restablecimiento.", &models.CmsError{Status: de.Status, Message: de.Message}), Effects{}, nil
		}
		return nil, Effects{}, err
	}

	// A reset-password record never carries a password.
	token, err := s.createPending(&models.PendingVerification{
		Type:     models.FlowResetPassword,
		Email:    req.Email,
		Username: username,
		CodeHash: codeHash,
	})
	if err != nil {
		return nil, Effects{}, err
	}

	log.Printf("[auth][reset] code sent email=%q", req.Email)
	return &models.FormState{
		Success:  true,
		Message:  "Código enviado a su correo electrónico.",
		Redirect: paths.ResetPasswordCode,
	}, Effects{SetPending: token}, nil
}

func (s *AuthService) VerifyResetCode(ctx context.Context, pendingToken string, req models.VerifyCodeRequest) (*models.FormState, Effects, error) {
	if errs := validation.Struct(req); errs != nil {
		return models.ValidationFailed(errs, req), Effects{}, nil
	}

	pv, expired := s.loadPending(pendingToken, models.FlowResetPassword)
	if expired != nil {
		return expiredState("Su sesión expiró. Debe solicitar un nuevo código.", paths.ResetPassword), Effects{ClearPending: true}, nil
	}

	// markAsUsed:false — the code stays valid until the final
	// change-password step consumes it.
	state, effects, done, err := s.checkCode(ctx, pv, req.Code, false, paths.ResetPassword,
		"Ha agotado sus intentos. Debe solicitar un nuevo código.",
		"Error de servidor. Debe solicitar un nuevo código.")
	if err != nil {
		return nil, Effects{}, err
	}
	if done {
		return state, effects, nil
	}

	if err := s.Pending.SetConfirmedCode(pv.ID, req.Code); err != nil {
		return nil, Effects{}, err
	}
	log.Printf("[auth][reset] code verified email=%q", pv.Email)
	return &models.FormState{
		Success:  true,
		Message:  "¡Código verificado exitosamente!",
		Redirect: paths.ChangePassword,
	}, Effects{}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, pendingToken string, req models.ChangePasswordRequest) (*models.FormState, Effects, error) {
	if errs := validation.Struct(req); errs != nil {
		return models.ValidationFailed(errs, req), Effects{}, nil
	}

	pv, expired := s.loadPending(pendingToken, models.FlowResetPassword)
	if expired != nil || pv.ConfirmedCode == "" {
		if pv != nil {
			s.destroyPending(pv)
		}
		return expiredState("Su sesión expiró. Debe solicitar un nuevo código.", paths.ResetPassword), Effects{ClearPending: true}, nil
	}

	var res *cms.Result
	var err error
	if s.Emails.LocalCodes() {
		res, err = s.changePasswordLocal(ctx, pv, req.NewPassword)
	} else {
		// The CMS atomically re-validates the code and mutates the password.
		res, err = s.Client.Post(ctx, cms.PathPasswordReset, s.Client.APIKey, map[string]string{
			"email":    pv.Email,
			"code":     pv.ConfirmedCode,
			"password": req.NewPassword,
		})
	}
	if err != nil {
		return nil, Effects{}, err
	}
	if !res.Success {
		log.Printf("[auth][change-password] rejected email=%q status=%d", pv.Email, res.Status)
		s.destroyPending(pv)
		message := "Error del servidor. Intenta de nuevo más tarde."
		if res.Status == http.StatusBadRequest {
			message = "El código es inválido o ha expirado."
		}
		return &models.FormState{
			Success:   false,
			Message:   message,
			CmsErrors: &models.CmsError{Status: res.Status, Message: res.Message},
			Redirect:  paths.ResetPassword,
		}, Effects{ClearPending: true}, nil
	}

	s.destroyPending(pv)
	log.Printf("[auth][change-password] success email=%q", pv.Email)
	return &models.FormState{
		Success:  true,
		Message:  "¡Contraseña cambiada exitosamente!",
		Redirect: paths.Login,
	}, Effects{ClearPending: true}, nil
}

// changePasswordLocal re-validates the confirmed code against the stored
// hash (the smtp provider's markAsUsed equivalent) and updates the password
// through the users collection with the API key.
func (s *AuthService) changePasswordLocal(ctx context.Context, pv *models.PendingVerification, password string) (*cms.Result, error) {
	if bcrypt.CompareHashAndPassword([]byte(pv.CodeHash), []byte(pv.ConfirmedCode)) != nil {
		return &cms.Result{Success: false, Status: http.StatusBadRequest, Message: "Código inválido"}, nil
	}
	id, err := s.lookupUserID(ctx, pv.Email)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return &cms.Result{Success: false, Status: http.StatusNotFound, Message: "Usuario no encontrado"}, nil
	}
	return s.Client.Put(ctx, cms.PathUsers+"/"+strconv.Itoa(id), s.Client.APIKey, map[string]string{
		"password": password,
	})
}

// ---------- authenticated password change ----------

func (s *AuthService) ChangePasswordAuthenticated(ctx context.Context, sessionToken string, req models.ChangePasswordAuthenticatedRequest) (*models.FormState, Effects, error) {
	if sessionToken == "" {
		return models.CmsFailed("No hay sesión activa.", &models.CmsError{Status: http.StatusUnauthorized}), Effects{}, nil
	}
	if errs := validation.Struct(req); errs != nil {
		return models.ValidationFailed(errs, req), Effects{}, nil
	}

	// The CMS verifies currentPassword itself.
	res, err := s.Client.Post(ctx, cms.PathAuthChangePassword, sessionToken, map[string]string{
		"currentPassword":      req.CurrentPassword,
		"password":             req.NewPassword,
		"passwordConfirmation": req.NewPasswordConfirm,
	})
	if err != nil {
		return nil, Effects{}, err
	}
	if !res.Success {
		log.Printf("[auth][change-password] authenticated change rejected status=%d", res.Status)
		return models.CmsFailed("Error al cambiar la contraseña.", &models.CmsError{Status: res.Status, Message: res.Message}), Effects{}, nil
	}

	effects := Effects{}
	var rotated loginResponse
	if err := res.Decode(&rotated); err == nil && rotated.JWT != "" {
		// The CMS rotated the session token; overwrite the cookie.
		effects.SetSession = rotated.JWT
		effects.SessionTTL = s.sessionTTL(rotated.JWT)
	}
	return &models.FormState{
		Success: true,
		Message: "¡Contraseña cambiada exitosamente!",
	}, effects, nil
}

// ---------- shared pieces ----------

func (s *AuthService) userExists(ctx context.Context, email string) (bool, error) {
	_, exists, err := s.lookupUsername(ctx, email)
	return exists, err
}

func (s *AuthService) lookupUsername(ctx context.Context, email string) (string, bool, error) {
	users, err := s.findUsers(ctx, email)
	if err != nil || len(users) == 0 {
		return "", false, err
	}
	return users[0].Username, true, nil
}

func (s *AuthService) lookupUserID(ctx context.Context, email string) (int, error) {
	users, err := s.findUsers(ctx, email)
	if err != nil || len(users) == 0 {
		return 0, err
	}
	return users[0].ID, nil
}

func (s *AuthService) findUsers(ctx context.Context, email string) ([]models.User, error) {
	query := cms.NewQuery().FilterEq("email", email).Encode()
	res, err := s.Client.Get(ctx, cms.PathUsers+"?"+query, s.Client.APIKey)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, errors.New("auth: user lookup failed: " + res.Message)
	}
	var users []models.User
	if err := res.Decode(&users); err != nil {
		return nil, err
	}
	return users, nil
}

// newCode generates a local 4-digit code for providers that need one.
func (s *AuthService) newCode() (code, hash string, err error) {
	if !s.Emails.LocalCodes() {
		return "", "", nil
	}
	code, err = utils.GenerateCode()
	if err != nil {
		return "", "", err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return code, string(h), nil
}

func (s *AuthService) createPending(pv *models.PendingVerification) (string, error) {
	token, err := utils.NewStateToken(32)
	if err != nil {
		return "", err
	}
	pv.Token = token
	pv.ExpiresAt = time.Now().Add(s.SessionTTL)
	if _, err := s.Pending.Create(pv); err != nil {
		return "", err
	}
	// Last-write-wins on concurrent flows: the new cookie replaces the old
	// one and the orphaned row ages out via its expiry.
	if n, err := s.Pending.DeleteExpired(); err == nil && n > 0 {
		log.Printf("[auth][pending] reaped %d expired records", n)
	}
	return token, nil
}

var errPendingExpired = errors.New("pending verification missing or expired")

func (s *AuthService) loadPending(token, flowType string) (*models.PendingVerification, error) {
	if token == "" {
		return nil, errPendingExpired
	}
	pv, err := s.Pending.GetByToken(token)
	if err != nil {
		log.Printf("[auth][pending] load failed: %v", err)
		return nil, errPendingExpired
	}
	if pv == nil || pv.Type != flowType {
		return nil, errPendingExpired
	}
	return pv, nil
}

func (s *AuthService) destroyPending(pv *models.PendingVerification) {
	if err := s.Pending.Delete(pv.ID); err != nil {
		log.Printf("[auth][pending] delete failed id=%d: %v", pv.ID, err)
	}
}

// checkCode verifies the submitted code, counting attempts. done is true
// when the caller should return state/effects instead of continuing the
// flow (invalid code, aborted flow, rate limit, or server error).
func (s *AuthService) checkCode(ctx context.Context, pv *models.PendingVerification, code string, markAsUsed bool, restartRoute, exhaustedMessage, serverErrorMessage string) (*models.FormState, Effects, bool, error) {
	valid, status, err := s.codeValid(ctx, pv, code, markAsUsed)
	if err != nil {
		return nil, Effects{}, false, err
	}

	if status == http.StatusTooManyRequests {
		return models.CmsFailed("Ha realizado muchos intentos, intente más tarde.", &models.CmsError{Status: status}), Effects{}, true, nil
	}
	if valid {
		return nil, Effects{}, false, nil
	}

	// Anything other than a plain code rejection is a server failure: it
	// aborts the flow without charging an attempt.
	if status != http.StatusBadRequest {
		log.Printf("[auth][verify] verify-code server error email=%q type=%s status=%d", pv.Email, pv.Type, status)
		s.destroyPending(pv)
		return &models.FormState{
			Success:   false,
			Message:   serverErrorMessage,
			CmsErrors: &models.CmsError{Status: http.StatusInternalServerError},
			Redirect:  restartRoute,
		}, Effects{ClearPending: true}, true, nil
	}

	attempts, incErr := s.Pending.IncrementAttempts(pv.ID)
	if incErr != nil {
		log.Printf("[auth][verify] attempt count failed id=%d: %v", pv.ID, incErr)
		attempts = pv.Attempts + 1
	}
	remaining := MaxInvalidCodeAttempts - attempts
	if remaining <= 0 {
		log.Printf("[auth][verify] attempts exhausted email=%q type=%s", pv.Email, pv.Type)
		s.destroyPending(pv)
		return &models.FormState{
			Success:   false,
			Message:   exhaustedMessage,
			CmsErrors: &models.CmsError{Status: http.StatusBadRequest},
			Redirect:  restartRoute,
		}, Effects{ClearPending: true}, true, nil
	}

	return &models.FormState{
		Success:   false,
		Message:   formatRemaining(remaining),
		CmsErrors: &models.CmsError{Status: http.StatusBadRequest},
	}, Effects{}, true, nil
}

func (s *AuthService) codeValid(ctx context.Context, pv *models.PendingVerification, code string, markAsUsed bool) (bool, int, error) {
	if s.Emails.LocalCodes() {
		err := bcrypt.CompareHashAndPassword([]byte(pv.CodeHash), []byte(code))
		return err == nil, http.StatusBadRequest, nil
	}

	res, err := s.Client.Post(ctx, cms.PathVerifyCode+"/"+pv.Type, s.Client.APIKey, map[string]interface{}{
		"email":      pv.Email,
		"type":       pv.Type,
		"code":       code,
		"markAsUsed": markAsUsed,
	})
	if err != nil {
		return false, 0, err
	}
	if !res.Success {
		return false, res.Status, nil
	}

	var body struct {
		Result struct {
			Valid bool `json:"valid"`
		} `json:"result"`
	}
	if err := res.Decode(&body); err != nil {
		return false, http.StatusInternalServerError, nil
	}
	return body.Result.Valid, http.StatusBadRequest, nil
}

func expiredState(message, redirect string) *models.FormState {
	return &models.FormState{
		Success:   false,
		Message:   message,
		CmsErrors: &models.CmsError{Status: http.StatusBadRequest},
		Redirect:  redirect,
	}
}

func formatRemaining(remaining int) string {
	if remaining == 1 {
		return "Código incorrecto. Tiene 1 intento restante."
	}
	return "Código incorrecto. Tiene " + strconv.Itoa(remaining) + " intentos restantes."
}

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"diligencias_app_go/config"
	"diligencias_app_go/db"
	"diligencias_app_go/middleware"
	"diligencias_app_go/services"
	"diligencias_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// ForgotPasswordHandler renders the forgot password page
func ForgotPasswordHandler(c echo.Context) error {
	csrfToken := middleware.GetCSRFToken(c)
	component := pages.ForgotPassword(c.Request().Context(), "Recuperar contraseña | Gestor de Diligencias", csrfToken)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// ForgotPasswordPostHandler handles the forgot password form submission
func ForgotPasswordPostHandler(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))

	if email == "" {
		if isHTMX(c) {
			return alertError(c, "El email es obligatorio")
		}
		return c.Redirect(http.StatusSeeOther, "/forgot-password")
	}

	// Returns nil token for unknown emails so the response never reveals
	// whether an account exists
	resetToken, err := services.GenerateResetToken(db.DB, email)
	if err != nil {
		if isHTMX(c) {
			return alertError(c, "Se ha producido un error. Inténtelo de nuevo.")
		}
		return c.Redirect(http.StatusSeeOther, "/forgot-password")
	}

	if resetToken != nil {
		cfg := c.Get("config").(*config.Config)

		resetLink := fmt.Sprintf("%s/reset-password?token=%s", cfg.AppURL, resetToken.Token)
		expiresAt := resetToken.ExpiresAt.Format("02/01/2006 15:04")

		userName := email
		if resetToken.User != nil && resetToken.User.Name != "" {
			userName = resetToken.User.Name
		}

		emailMsg := services.BuildPasswordResetEmail(email, userName, resetLink, expiresAt)
		services.SendEmailAsync(cfg, emailMsg)
	}

	// Same response whether or not the account exists
	if isHTMX(c) {
		return alertSuccess(c, "Si existe una cuenta con ese email, recibirá un enlace de restablecimiento en breve.")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// ResetPasswordHandler renders the reset password page
func ResetPasswordHandler(c echo.Context) error {
	csrfToken := middleware.GetCSRFToken(c)
	token := c.QueryParam("token")

	validToken := false
	if token != "" {
		_, err := services.ValidateResetToken(db.DB, token)
		validToken = err == nil
	}

	component := pages.ResetPassword(c.Request().Context(), "Restablecer contraseña | Gestor de Diligencias", csrfToken, token, validToken)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// ResetPasswordPostHandler handles the reset password form submission
func ResetPasswordPostHandler(c echo.Context) error {
	token := c.FormValue("token")
	password := c.FormValue("password")
	passwordConfirm := c.FormValue("password_confirm")

	if token == "" || password == "" || passwordConfirm == "" {
		if isHTMX(c) {
			return alertError(c, "Todos los campos son obligatorios")
		}
		return c.Redirect(http.StatusSeeOther, "/reset-password?token="+token)
	}

	if password != passwordConfirm {
		if isHTMX(c) {
			return alertError(c, "Las contraseñas no coinciden")
		}
		return c.Redirect(http.StatusSeeOther, "/reset-password?token="+token)
	}

	if err := services.ResetPassword(db.DB, token, password); err != nil {
		if isHTMX(c) {
			return alertError(c, err.Error())
		}
		return c.Redirect(http.StatusSeeOther, "/reset-password?token="+token)
	}

	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", "/login")
		return alertSuccess(c, "Contraseña restablecida. Acceda con la nueva contraseña.")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

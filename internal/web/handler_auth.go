package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"silant-servicebook-web/internal/mw"
	"silant-servicebook-web/internal/session"
)

const loginFailedMessage = "Неверный логин или пароль"

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginPage renders the sign-in form.
func (h *Handler) LoginPage(c *gin.Context) {
	if mw.Credentials(c).Authenticated() {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.renderLogin(c, http.StatusOK, "", "")
}

// Login exchanges the submitted credentials for a token and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, http.StatusBadRequest, form.Username, loginFailedMessage)
		return
	}

	token, err := h.api.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.logFor(c).WithError(err).WithField("username", form.Username).Warn("login failed")
		h.renderLogin(c, http.StatusUnauthorized, form.Username, loginFailedMessage)
		return
	}

	id, err := h.sessions.Create(c.Request.Context(), session.Credentials{Token: token, Username: form.Username})
	if err != nil {
		h.logFor(c).WithError(err).Error("failed to create session")
		c.HTML(http.StatusInternalServerError, "error.html", errorPage{
			layout: layout{Title: "Ошибка"},
			Error:  "Не удалось выполнить вход. Попробуйте позже.",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, id, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.SecureCookie, true)
	h.log.WithField("username", form.Username).Info("user signed in")
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout closes the session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if id := mw.SessionID(c); id != "" {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			h.logFor(c).WithError(err).Warn("failed to delete session")
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, "", -1, "/", "", h.cookie.SecureCookie, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) renderLogin(c *gin.Context, status int, username, message string) {
	c.HTML(status, "login.html", loginPage{
		layout:   layout{Title: "Авторизация", User: mw.Credentials(c)},
		Username: username,
		Error:    message,
	})
}

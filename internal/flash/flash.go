package flash

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is shown once on the next rendered page.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type CookieConfig struct {
	Name     string
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
}

type Service struct {
	cookie *CookieConfig
}

func NewService(cookieConfig *CookieConfig) *Service {
	if cookieConfig == nil {
		cookieConfig = &CookieConfig{
			Name:     "flash",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
	}
	return &Service{cookie: cookieConfig}
}

func Success(text string) Message {
	return Message{Kind: KindSuccess, Text: text}
}

func Error(text string) Message {
	return Message{Kind: KindError, Text: text}
}

// Set stores msg for the next request, replacing any pending message.
func (s *Service) Set(w http.ResponseWriter, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	http.SetCookie(w, s.newCookie(base64.RawURLEncoding.EncodeToString(data), time.Time{}))
}

// Pop returns the pending message, if any, and clears it.
func (s *Service) Pop(w http.ResponseWriter, r *http.Request) *Message {
	c, err := r.Cookie(s.cookie.Name)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			s.clear(w)
		}
		return nil
	}
	s.clear(w)

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil || msg.Text == "" {
		return nil
	}
	if msg.Kind != KindSuccess {
		msg.Kind = KindError
	}
	return &msg
}

func (s *Service) clear(w http.ResponseWriter) {
	c := s.newCookie("", time.Unix(0, 0))
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (s *Service) newCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookie.Name,
		Value:    value,
		Expires:  expires,
		Path:     s.cookie.Path,
		HttpOnly: s.cookie.HttpOnly,
		Secure:   s.cookie.Secure,
		SameSite: s.cookie.SameSite,
	}
}

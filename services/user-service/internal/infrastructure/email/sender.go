package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"
)

const sendGridURL = "https://api.sendgrid.com/v3/mail/send"

// RewardMailer tells guardians when a child closes a training cycle. With no
// API key configured it does nothing.
type RewardMailer struct {
	apiKey      string
	senderEmail string
	senderName  string
	endpoint    string
	client      *http.Client
}

func NewRewardMailer(apiKey, senderEmail string) *RewardMailer {
	return &RewardMailer{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  "Hero Academy",
		endpoint:    sendGridURL,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

type sgEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgPersonalization struct {
	To []sgEmail `json:"to"`
}

type sgRequest struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgEmail             `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
}

func (m *RewardMailer) Enabled() bool {
	return m.apiKey != ""
}

// SendRewardUnlocked notifies to that heroName finished a cycle of track and
// earned reward. An empty reward means the guardian has not set one yet.
func (m *RewardMailer) SendRewardUnlocked(ctx context.Context, to, heroName, track, reward string) error {
	if !m.Enabled() || to == "" {
		return nil
	}

	prize := "Define una recompensa en el Centro de Padres."
	if reward != "" {
		prize = "Recompensa: " + html.EscapeString(reward)
	}
	body := sgRequest{
		Personalizations: []sgPersonalization{{To: []sgEmail{{Email: to}}}},
		From:             sgEmail{Email: m.senderEmail, Name: m.senderName},
		Subject:          "¡Recompensa real desbloqueada!",
		Content: []sgContent{{
			Type: "text/html",
			Value: fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif;">
<h3>%s completó 20 misiones de %s</h3>
<p>%s</p>
<p>Marca la recompensa como entregada desde el Centro de Padres.</p>
</body></html>`, html.EscapeString(heroName), html.EscapeString(track), prize),
		}},
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// SendGrid answers 202 on success.
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendgrid error: status=%d body=%s", resp.StatusCode, b)
	}
	return nil
}

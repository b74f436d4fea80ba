// Copyright (c) 2025 Kayla Lewis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kaylew1421/commonkind/cliparse"
	"github.com/kaylew1421/commonkind/middleware"
	"github.com/kaylew1421/commonkind/models"
)

// AIHandler proxies the chat widget to an upstream generative-text
// service. It never hard-fails: any upstream problem (no key, timeout,
// bad payload) downgrades to a canned answer so the widget keeps
// working.
type AIHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	client *http.Client
}

func NewAIHandler(database *sql.DB, cfg cliparse.Config) *AIHandler {
	return &AIHandler{
		db:  database,
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.AITimeout,
		},
	}
}

// Ask handles POST /api/ai
// Always answers 200. A mock:true marker tells the client the answer
// came from the fallback path rather than the upstream model.
func (h *AIHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskAIRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.JSONResponse(w, http.StatusOK, models.AskAIResponse{
			OK: true, Answer: fallbackAnswer(""), Mock: true,
		})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		middleware.JSONResponse(w, http.StatusOK, models.AskAIResponse{
			OK: true, Answer: fallbackAnswer(req.Locale), Mock: true,
		})
		return
	}

	if h.cfg.AIEndpoint == "" || h.cfg.AIAPIKey == "" {
		middleware.JSONResponse(w, http.StatusOK, models.AskAIResponse{
			OK: true, Answer: mockAnswer(question, req.Hubs, req.Locale), Mock: true,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.AITimeout)
	defer cancel()

	answer, err := h.askUpstream(ctx, buildPrompt(question, req.Hubs, req.Locale))
	if err != nil {
		slog.Warn("ai upstream failed, using fallback", "error", err)
		middleware.JSONResponse(w, http.StatusOK, models.AskAIResponse{
			OK: true, Answer: mockAnswer(question, req.Hubs, req.Locale), Mock: true,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AskAIResponse{OK: true, Answer: answer})
}

// Upstream wire types (generateContent-shaped)

type upstreamRequest struct {
	Contents []upstreamContent `json:"contents"`
}

type upstreamContent struct {
	Parts []upstreamPart `json:"parts"`
}

type upstreamPart struct {
	Text string `json:"text"`
}

type upstreamResponse struct {
	Candidates []struct {
		Content upstreamContent `json:"content"`
	} `json:"candidates"`
}

func (h *AIHandler) askUpstream(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(upstreamRequest{
		Contents: []upstreamContent{{Parts: []upstreamPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode upstream request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.AIEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build upstream request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", h.cfg.AIAPIKey)

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var parsed upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode upstream response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("upstream returned no candidates")
	}

	answer := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if answer == "" {
		return "", fmt.Errorf("upstream returned an empty answer")
	}

	return answer, nil
}

func buildPrompt(question string, hubs []models.Hub, locale string) string {
	var b strings.Builder
	b.WriteString("You are the CommonKind helper. Answer briefly about meal vouchers, ")
	b.WriteString("participating hubs, and how scanning works. Answer in locale ")
	if locale == "" {
		locale = "en"
	}
	b.WriteString(locale)
	b.WriteString(".\n")

	if len(hubs) > 0 {
		b.WriteString("Current hubs:\n")
		for _, h := range hubs {
			fmt.Fprintf(&b, "- %s (%s), %s, vouchers remaining %d\n", h.Name, h.Type, h.Hours, h.VouchersRemaining)
		}
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}

// mockAnswer is the canned path used when no upstream is configured or
// the upstream fails. It answers the two most common questions from
// hub context alone so the demo works fully offline.
func mockAnswer(question string, hubs []models.Hub, locale string) string {
	q := strings.ToLower(question)

	if len(hubs) > 0 && (strings.Contains(q, "hub") || strings.Contains(q, "where") || strings.Contains(q, "near")) {
		names := make([]string, 0, len(hubs))
		for _, h := range hubs {
			if h.VouchersRemaining > 0 {
				names = append(names, h.Name)
			}
			if len(names) == 3 {
				break
			}
		}
		if len(names) > 0 {
			return fmt.Sprintf("Hubs with vouchers available right now: %s. Tap a pin on the map for hours and details.", strings.Join(names, ", "))
		}
	}

	if strings.Contains(q, "voucher") || strings.Contains(q, "redeem") || strings.Contains(q, "scan") {
		return "Pick a hub on the map and tap Get Voucher. You'll get a QR code valid for 2 hours; show it at the hub or read out the V- code."
	}

	return fallbackAnswer(locale)
}

func fallbackAnswer(locale string) string {
	if strings.HasPrefix(strings.ToLower(locale), "es") {
		return "Puedo ayudarte con cupones de comida y hubs participantes. Elige un hub en el mapa para empezar."
	}
	return "I can help with meal vouchers and participating hubs. Pick a hub on the map to get started."
}

package main

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/hellofriends/rights-engine/internal/llm"
	"github.com/hellofriends/rights-engine/pkg/rights"
	"github.com/hellofriends/rights-engine/pkg/rights/kb"
	"github.com/hellofriends/rights-engine/pkg/rights/render"
	"github.com/hellofriends/rights-engine/pkg/rights/store"
	"github.com/hellofriends/rights-engine/pkg/rights/uploads"
)

type handlers struct {
	assistant *rights.Assistant
	scanner   *uploads.Scanner
	st        store.Store
	llm       *llm.Client
	log       *zap.Logger
}

type chatRequest struct {
	Query    string `json:"query"`
	Language string `json:"language"`
}

type chatResponse struct {
	ID         string       `json:"id"`
	Kind       string       `json:"kind"`
	Language   string       `json:"language"`
	Text       string       `json:"text"`
	Summary    string       `json:"summary,omitempty"`
	Steps      []string     `json:"steps,omitempty"`
	Contacts   []kb.Contact `json:"contacts,omitempty"`
	Disclaimer string       `json:"disclaimer"`
	Plain      string       `json:"plain,omitempty"`
}

// chat answers one question. Every outcome is a 200 with a displayable
// response; only malformed requests and retriever failures error.
func (h *handlers) chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.assistant.Respond(c.Context(), rights.Query{
		Text:     req.Query,
		Language: req.Language,
	})
	if err != nil {
		h.log.Error("respond", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "could not answer right now")
	}

	observe(resp)

	out := chatResponse{
		ID:         resp.ID,
		Kind:       string(resp.Kind),
		Language:   resp.Language,
		Text:       resp.Text,
		Summary:    resp.Summary,
		Steps:      resp.Steps,
		Contacts:   resp.Contacts,
		Disclaimer: resp.Disclaimer,
	}

	if h.llm.Enabled() && resp.Kind == render.KindMatch {
		if plain, err := h.llm.Summarize(c.Context(), req.Query, resp); err == nil {
			out.Plain = plain
		} else {
			h.log.Warn("llm summarize", zap.Error(err))
		}
	}

	return c.JSON(out)
}

// stats feeds the admin panel: entry, upload, and interaction counts.
func (h *handlers) stats(c *fiber.Ctx) error {
	uploadsCount, err := h.st.CountUploads(c.Context())
	if err != nil {
		return err
	}
	interactions, err := h.st.CountInteractions(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"knowledge_base_entries": h.assistant.KnowledgeBase().Len(),
		"uploaded_documents":     uploadsCount,
		"interactions":           interactions,
	})
}

// upload stores a document in the uploads directory and registers it.
// The file feeds a future retrieval path; the chat path never reads it.
func (h *handlers) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file field required")
	}

	name := filepath.Base(file.Filename)
	dir := h.scanner.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return err
	}

	u, err := h.scanner.Register(c.Context(), name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"name":       u.Name,
		"size_bytes": u.SizeBytes,
	})
}

func (h *handlers) listUploads(c *fiber.Ctx) error {
	list, err := h.st.ListUploads(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"uploads": list})
}

func (h *handlers) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mmm-reach/allocation"
	"github.com/danielhkuo/mmm-reach/models"
	"github.com/danielhkuo/mmm-reach/report"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

const (
	noticeCompleted = "Calculation completed!"
	reachPopulation = "17.6 Mn"
)

type channelField struct {
	Name       string
	Efficiency string
	Models     []string
	Selected   string
	Invalid    bool
}

type pageData struct {
	Channels   []channelField
	Submitting bool
	Notice     string
	Error      string
	Report     *report.Report
	Population string
}

// Index handles GET /
// Renders the input form and the result currently on display
func (h *AllocationHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.page(nil, "", ""))
}

// SubmitForm handles POST /analyze
// Form fields: efficiency_<Channel>, model_<Channel>
func (h *AllocationHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, h.page(nil, "", "Invalid form submission"))
		return
	}
	inputs := formInputs(r)

	_, err := h.submit(r.Context(), inputs)

	var vErr *allocation.ValidationError
	var rErr *allocation.RequestError
	switch {
	case err == nil:
		h.render(w, http.StatusOK, h.page(inputs, noticeCompleted, ""))
	case errors.Is(err, allocation.ErrSubmissionInFlight):
		// ignored while a calculation runs
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.As(err, &vErr):
		h.render(w, http.StatusBadRequest, h.page(inputs, "", vErr.Error()))
	case errors.As(err, &rErr):
		h.render(w, http.StatusBadGateway, h.page(inputs, "", "Error: "+rErr.Error()))
	default:
		slog.Error("unexpected submit error", "error", err)
		h.render(w, http.StatusInternalServerError, h.page(inputs, "", "Internal error"))
	}
}

func formInputs(r *http.Request) models.ChannelInputs {
	inputs := make(models.ChannelInputs, len(models.Channels))
	for _, ch := range models.Channels {
		eff, ok := r.PostForm["efficiency_"+string(ch)]
		if !ok || len(eff) == 0 {
			continue
		}
		inputs[ch] = models.ChannelInput{
			Efficiency: eff[0],
			Model:      r.PostForm.Get("model_" + string(ch)),
		}
	}
	return inputs
}

func (h *AllocationHandler) page(inputs models.ChannelInputs, notice, errMsg string) pageData {
	invalid := map[models.Channel]bool{}
	if errMsg != "" && inputs != nil {
		for _, v := range allocation.Violations(inputs) {
			invalid[v.Channel] = true
		}
	}

	data := pageData{
		Channels:   make([]channelField, 0, len(models.Channels)),
		Submitting: h.client.State() == allocation.StateSubmitting,
		Notice:     notice,
		Error:      errMsg,
		Population: reachPopulation,
	}

	for _, ch := range models.Channels {
		in := inputs[ch]
		selected := in.Model
		if selected == "" {
			selected = ch.DefaultModel()
		}
		field := channelField{
			Name:       string(ch),
			Efficiency: in.Efficiency,
			Selected:   selected,
			Invalid:    invalid[ch],
		}
		if ch.HasModelChoice() {
			field.Models = ch.Models()
		}
		data.Channels = append(data.Channels, field)
	}

	if res := h.Current(); res != nil {
		rep := report.Build(*res)
		data.Report = &rep
	}

	return data
}

func (h *AllocationHandler) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("failed to render dashboard", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write dashboard", "error", err)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"stabsurvival/internal/application/usecases"
)

// CampaignHandler expõe os metadados públicos da campanha corrente.
type CampaignHandler struct {
	campaigns usecases.CampaignProvider
}

func NewCampaignHandler(campaigns usecases.CampaignProvider) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// GetCampaign godoc
// @Summary Metadados da campanha corrente
// @Description Título, subtítulo e configurações visíveis. As respostas
// @Description corretas nunca saem por aqui.
// @Tags Campaign
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /campaign [get]
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	c := h.campaigns.Current()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"schemaVersion": c.SchemaVersion,
		"meta":          c.Meta,
		"timer": map[string]interface{}{
			"enabled":        c.Config.Timer.Enabled,
			"secondsPerStep": c.Config.Timer.SecondsPerStep,
		},
		"cheatEnabled":   c.Config.Cheat.Enabled,
		"devModeEnabled": c.Config.DevMode.Enabled,
		"introCount":     len(c.IntroSlides),
		"roundCount":     len(c.Rounds),
		"stepCount":      c.TotalActiveSteps(),
	})
}

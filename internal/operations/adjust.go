package operations

import "github.com/desertthunder/stacksync/internal/models"

// DeriveAdjustments scans findings in order and buckets a corrective action for every
// finding that is not matched. Combinations it does not recognize are dropped.
//
// No rule currently targets the frontend bucket; it is always present and empty.
func DeriveAdjustments(findings []models.Finding) models.Adjustments {
	adj := models.NewAdjustments()

	for _, f := range findings {
		if f.Status == models.StatusMatched {
			continue
		}

		switch f.Type {
		case models.FindingAPIContract:
			apiAdjustment(f, &adj)
		case models.FindingDataModel:
			modelAdjustment(f, &adj)
		case models.FindingAuth:
			authAdjustment(f, &adj)
		}
	}

	return adj
}

func apiAdjustment(f models.Finding, adj *models.Adjustments) {
	switch f.Status {
	case models.StatusMissingEndpoint:
		adj.Backend = append(adj.Backend, models.Adjustment{
			Type:    models.AdjustCreateEndpoint,
			Service: f.FrontendService,
		})
	case models.StatusMethodMismatch:
		adj.Critical = append(adj.Critical, models.Adjustment{
			Type:    models.AdjustAPIMethodMismatch,
			Service: f.FrontendService,
			Details: f.Methods.Clone(),
		})
	}
}

func modelAdjustment(f models.Finding, adj *models.Adjustments) {
	switch f.Status {
	case models.StatusMissingModel:
		adj.Backend = append(adj.Backend, models.Adjustment{
			Type:  models.AdjustCreateModel,
			Model: f.ModelName,
		})
	case models.StatusPropertyMismatch:
		adj.Critical = append(adj.Critical, models.Adjustment{
			Type:    models.AdjustModelPropertyMismatch,
			Model:   f.ModelName,
			Details: f.PropertyDiffs.Clone(),
		})
	}
}

// authAdjustment treats every non-matched auth finding as critical.
func authAdjustment(f models.Finding, adj *models.Adjustments) {
	switch f.Status {
	case models.StatusRoleMismatch:
		details := models.SideBySide{Frontend: []string{}, Backend: []string{}}
		if f.Differences != nil {
			roles := f.Differences.Clone()
			details = models.SideBySide{Frontend: roles.FrontendOnly, Backend: roles.BackendOnly}
		}
		adj.Critical = append(adj.Critical, models.Adjustment{
			Type:    models.AdjustAuthRoleMismatch,
			Details: details,
		})
	default:
		adj.Critical = append(adj.Critical, models.Adjustment{
			Type:    models.AdjustAuthMechanismMismatch,
			Details: models.SideBySide{Frontend: models.OptionalString(f.Frontend), Backend: models.OptionalString(f.Backend)},
		})
	}
}

package operations

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stacksync/internal/models"
)

const FrontendBackendSync = "frontend_backend_sync"

// ImplementationReconciler compares a frontend implementation summary against a backend
// one along three independent axes (API contracts, data models, auth) and derives a
// bucketed remediation plan.
//
// By default a matched pair always yields a matched finding, with any method or property
// delta embedded in the finding; the method_mismatch and property_mismatch adjustment
// branches are then never taken. With escalate set, a matched pair whose diff is not empty
// is reported as method_mismatch or property_mismatch instead.
type ImplementationReconciler struct {
	frontendStack string
	backendStack  string
	escalate      bool
	logger        *log.Logger
}

// NewImplementationReconciler creates the frontend_backend_sync operation.
func NewImplementationReconciler(opts Options) *ImplementationReconciler {
	r := &ImplementationReconciler{
		frontendStack: opts.FrontendStack,
		backendStack:  opts.BackendStack,
		escalate:      opts.EscalateDiffs,
		logger:        opts.logger(FrontendBackendSync),
	}
	if r.frontendStack == "" {
		r.frontendStack = DefaultFrontendStack
	}
	if r.backendStack == "" {
		r.backendStack = DefaultBackendStack
	}
	return r
}

func (r *ImplementationReconciler) Name() string { return FrontendBackendSync }

func (r *ImplementationReconciler) Description() string {
	return fmt.Sprintf("Synchronizes %s frontend with %s backend implementation", r.frontendStack, r.backendStack)
}

// Run decodes inputs["frontend_implementation"] and inputs["backend_implementation"] and reconciles them.
func (r *ImplementationReconciler) Run(ctx context.Context, in Inputs) (any, error) {
	var frontend models.FrontendImplementation
	var backend models.BackendImplementation

	if err := in.Decode("frontend_implementation", &frontend); err != nil {
		return nil, err
	}
	if err := in.Decode("backend_implementation", &backend); err != nil {
		return nil, err
	}

	return r.Reconcile(frontend, backend), nil
}

// Reconcile runs all three axes and derives adjustments. It never fails.
func (r *ImplementationReconciler) Reconcile(frontend models.FrontendImplementation, backend models.BackendImplementation) *models.SyncReport {
	results := []models.Finding{}
	results = append(results, r.checkAPIContracts(frontend.APIServices, backend.APIEndpoints)...)
	results = append(results, r.checkDataModels(frontend.Models, backend.DataModels)...)
	results = append(results, checkAuth(frontend.AuthConfig, backend.SecurityConfig)...)

	report := &models.SyncReport{
		Results:     results,
		Adjustments: DeriveAdjustments(results),
	}

	r.logger.Debug("reconciled implementations",
		"findings", len(results), "adjustments", report.Adjustments.Len(), "critical", len(report.Adjustments.Critical))

	return report
}

func (r *ImplementationReconciler) checkAPIContracts(services []models.APIService, endpoints []models.ImplementedEndpoint) []models.Finding {
	findings := make([]models.Finding, 0, len(services))

	for _, svc := range services {
		ep, ok := MatchEndpoint(svc, endpoints)
		if !ok {
			findings = append(findings, models.Finding{
				Type:            models.FindingAPIContract,
				Status:          models.StatusMissingEndpoint,
				FrontendService: svc.Name,
			})
			continue
		}

		methods := CompareMethods(svc.AllMethods(), ep.AllMethods())
		status := models.StatusMatched
		if !methods.Empty() {
			if r.escalate {
				status = models.StatusMethodMismatch
			} else {
				r.logger.Debug("method delta kept inside matched finding", "service", svc.Name, "endpoint", ep.Path)
			}
		}

		findings = append(findings, models.Finding{
			Type:            models.FindingAPIContract,
			Status:          status,
			FrontendService: svc.Name,
			BackendEndpoint: endpointPath(ep),
			Methods:         methods,
		})
	}

	return findings
}

func (r *ImplementationReconciler) checkDataModels(frontend, backend []models.ModelSpec) []models.Finding {
	findings := make([]models.Finding, 0, len(frontend))

	for _, fm := range frontend {
		bm, ok := MatchModel(fm, backend)
		if !ok {
			findings = append(findings, models.Finding{
				Type:      models.FindingDataModel,
				Status:    models.StatusMissingModel,
				ModelName: fm.Name,
			})
			continue
		}

		diffs := CompareProperties(fm.PropertySet(), bm.PropertySet())
		status := models.StatusMatched
		if !diffs.Empty() {
			if r.escalate {
				status = models.StatusPropertyMismatch
			} else {
				r.logger.Debug("property delta kept inside matched finding", "model", fm.Name)
			}
		}

		findings = append(findings, models.Finding{
			Type:          models.FindingDataModel,
			Status:        status,
			ModelName:     fm.Name,
			PropertyDiffs: diffs,
		})
	}

	return findings
}

// endpointPath is nil for an endpoint paired by name alone.
func endpointPath(ep models.ImplementedEndpoint) *string {
	if ep.Path == "" {
		return nil
	}
	return models.StringPtr(ep.Path)
}

// checkAuth emits nothing when both sides agree. An absent mechanism only agrees with
// another absent one.
func checkAuth(frontend, backend models.AuthConfig) []models.Finding {
	var findings []models.Finding

	if !models.EqualString(frontend.Mechanism, backend.Mechanism) {
		findings = append(findings, models.Finding{
			Type:      models.FindingAuth,
			Status:    models.StatusMismatch,
			Component: "mechanism",
			Frontend:  models.CloneString(frontend.Mechanism),
			Backend:   models.CloneString(backend.Mechanism),
		})
	}

	if roles := CompareRoles(frontend.Roles, backend.Roles); !roles.Empty() {
		findings = append(findings, models.Finding{
			Type:        models.FindingAuth,
			Status:      models.StatusRoleMismatch,
			Differences: roles,
		})
	}

	return findings
}

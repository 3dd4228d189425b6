package ingest

import "rcm-workflow/internal/model"

// shapeRegistry maps each stage to its ordered list of acceptable
// endpoint-ready shape variants. Mirrors the backend's unique-field
// configuration per stage. Never mutated at runtime.
var shapeRegistry = map[model.StageID][]model.ShapeVariant{
	model.StageCheckEligibility: {
		{Wrapper: "Claim", Required: []string{"ID", "MemberID"}},
	},
	model.StagePriorAuthorization: {
		{Wrapper: "PriorAuthorizationRequest", Required: []string{"RequestID"}},
	},
	model.StageClinicalDocumentation: {
		{Wrapper: "ClinicalDocument", Required: []string{"ProcedureCode", "ClinicianID"}},
	},
	model.StageMedicalCoding: {
		{Wrapper: "Claim", Required: []string{"ID"}},
	},
	model.StageClaimsScrubbing: {
		{Wrapper: "Claim", Required: []string{"ExternalID"}},
	},
	model.StageClaimsSubmission: {
		{Wrapper: "ClaimSubmission", Required: []string{"ClaimID", "ExternalID"}},
	},
	model.StageRemittanceTracking: {
		{Wrapper: "Remittance", Required: []string{"RemitID", "ClaimRefID"}},
	},
	model.StageDenialManagement: {
		{Wrapper: "Denial", Required: []string{"ClaimRefID"}},
	},
	model.StageClaimsResubmission: {
		{Wrapper: "Resubmission", Required: []string{"OriginalClaimRefID"}},
	},
	model.StageReconciliation: {
		{Wrapper: "Reconciliation", Required: []string{"ReconID"}},
	},
}

// Variants returns the acceptable shape variants for a stage, in priority
// order. An unknown stage yields an empty list, which means no upload can
// ever be endpoint-ready for it.
func Variants(stage model.StageID) []model.ShapeVariant {
	return shapeRegistry[stage]
}

package model

// StageID identifies one of the ten fixed RCM workflow stages.
type StageID string

const (
	StageCheckEligibility      StageID = "check-eligibility"
	StagePriorAuthorization    StageID = "prior-authorization"
	StageClinicalDocumentation StageID = "clinical-documentation"
	StageMedicalCoding         StageID = "medical-coding"
	StageClaimsScrubbing       StageID = "claims-scrubbing"
	StageClaimsSubmission      StageID = "claims-submission"
	StageRemittanceTracking    StageID = "remittance-tracking"
	StageDenialManagement      StageID = "denial-management"
	StageClaimsResubmission    StageID = "claims-resubmission"
	StageReconciliation        StageID = "reconciliation"
)

// AllStages returns the ten stages in workflow order.
func AllStages() []StageID {
	return []StageID{
		StageCheckEligibility,
		StagePriorAuthorization,
		StageClinicalDocumentation,
		StageMedicalCoding,
		StageClaimsScrubbing,
		StageClaimsSubmission,
		StageRemittanceTracking,
		StageDenialManagement,
		StageClaimsResubmission,
		StageReconciliation,
	}
}

var stageLabels = map[StageID]string{
	StageCheckEligibility:      "Eligibility Check",
	StagePriorAuthorization:    "Prior Authorization",
	StageClinicalDocumentation: "Clinical Documentation",
	StageMedicalCoding:         "Medical Coding",
	StageClaimsScrubbing:       "Claims Scrubbing",
	StageClaimsSubmission:      "Claims Submission",
	StageRemittanceTracking:    "Remittance Tracking",
	StageDenialManagement:      "Denial Management",
	StageClaimsResubmission:    "Claims Resubmission",
	StageReconciliation:        "Reconciliation",
}

// Label returns the display label for a stage.
func (s StageID) Label() string {
	return stageLabels[s]
}

// Valid reports whether s is one of the ten known stages.
func (s StageID) Valid() bool {
	_, ok := stageLabels[s]
	return ok
}

// ParseStage converts a path/query value into a StageID.
func ParseStage(raw string) (StageID, bool) {
	s := StageID(raw)
	return s, s.Valid()
}

// ExpectedFields lists the looser per-stage field hints used by the
// manual-entry path. Not consumed by the ingestion core.
var ExpectedFields = map[StageID][]string{
	StageCheckEligibility:      {"Claim.ID", "Claim.MemberID", "Patient.Name", "Patient.DOB"},
	StagePriorAuthorization:    {"PriorAuthorizationRequest.RequestID", "PriorAuthorizationRequest.MemberID", "PriorAuthorizationRequest.ProcedureCodes"},
	StageClinicalDocumentation: {"ClinicalDocument.ProcedureCode", "ClinicalDocument.ClinicianID", "ClinicalDocument.Narrative"},
	StageMedicalCoding:         {"Claim.ID", "Claim.DiagnosisCodes", "Claim.PatientAge", "Claim.PatientSex"},
	StageClaimsScrubbing:       {"Claim.ExternalID", "Claim.ProviderID", "Claim.DateOfService"},
	StageClaimsSubmission:      {"ClaimSubmission.ClaimID", "ClaimSubmission.ExternalID", "ClaimSubmission.Total"},
	StageRemittanceTracking:    {"Remittance.RemitID", "Remittance.ClaimRefID", "Remittance.PaidAmount"},
	StageDenialManagement:      {"Denial.ClaimRefID", "Denial.RemitID", "Denial.Action"},
	StageClaimsResubmission:    {"Resubmission.OriginalClaimRefID", "Resubmission.ResubmissionType", "Resubmission.NewClaimID"},
	StageReconciliation:        {"Reconciliation.ReconID", "Reconciliation.Status"},
}

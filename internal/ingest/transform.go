package ingest

import (
	"rcm-workflow/internal/model"
	"rcm-workflow/pkg/utils"
)

// extractFn builds one canonical record out of a flattened CSV row, or
// returns nil when the stage's mandatory identifiers are absent.
type extractFn func(model.RawRow) model.CanonicalRecord

// extractors carries one extraction recipe per stage. Keeping every stage
// in a single table keeps exhaustiveness checkable against AllStages.
var extractors = map[model.StageID]extractFn{
	model.StageCheckEligibility:      extractEligibility,
	model.StagePriorAuthorization:    extractPriorAuth,
	model.StageClinicalDocumentation: extractClinicalDoc,
	model.StageMedicalCoding:         extractMedicalCoding,
	model.StageClaimsScrubbing:       extractScrubbing,
	model.StageClaimsSubmission:      extractSubmission,
	model.StageRemittanceTracking:    extractRemittance,
	model.StageDenialManagement:      extractDenial,
	model.StageClaimsResubmission:    extractResubmission,
	model.StageReconciliation:        extractReconciliation,
}

// TransformRow converts one raw CSV row into the canonical record for a
// stage. A nil return signals that a mandatory field is missing, which
// rejects the whole upload; partial batches are never staged.
func TransformRow(row model.RawRow, stage model.StageID) model.CanonicalRecord {
	fn, ok := extractors[stage]
	if !ok {
		return nil
	}
	return fn(row)
}

func wrap(wrapper string, inner map[string]interface{}) model.CanonicalRecord {
	return model.CanonicalRecord{wrapper: inner}
}

func extractEligibility(row model.RawRow) model.CanonicalRecord {
	claimID, ok := Resolve(row.Headers, row.Values, "claim.id", "claimid", "id")
	if !ok {
		return nil
	}
	memberID, ok := Resolve(row.Headers, row.Values, "claim.memberid", "memberid", "member_id", "nationalid")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"ID": claimID, "MemberID": memberID}
	if net, ok := Resolve(row.Headers, row.Values, "claim.net", "net", "amount"); ok {
		inner["Net"] = utils.ParseValue(net)
	}
	return wrap("Claim", inner)
}

func extractPriorAuth(row model.RawRow) model.CanonicalRecord {
	reqID, ok := Resolve(row.Headers, row.Values, "priorauthorizationrequest.requestid", "requestid", "request_id")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"RequestID": reqID}
	if memberID, ok := Resolve(row.Headers, row.Values, "priorauthorizationrequest.memberid", "memberid", "member_id"); ok {
		inner["MemberID"] = memberID
	}
	if codes, ok := Resolve(row.Headers, row.Values, "priorauthorizationrequest.procedurecodes", "procedurecodes", "procedure_codes"); ok {
		inner["ProcedureCodes"] = ParseList(codes)
	}
	if units, ok := Resolve(row.Headers, row.Values, "requestedunits", "units"); ok {
		inner["RequestedUnits"] = utils.ParseValue(units)
	}
	return wrap("PriorAuthorizationRequest", inner)
}

func extractClinicalDoc(row model.RawRow) model.CanonicalRecord {
	procCode, ok := Resolve(row.Headers, row.Values, "clinicaldocument.procedurecode", "procedurecode", "procedure_code")
	if !ok {
		return nil
	}
	clinicianID, ok := Resolve(row.Headers, row.Values, "clinicaldocument.clinicianid", "clinicianid", "clinician_id")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"ProcedureCode": procCode, "ClinicianID": clinicianID}
	if narrative, ok := Resolve(row.Headers, row.Values, "clinicaldocument.narrative", "narrative", "notes"); ok {
		inner["Narrative"] = narrative
	}
	if attachments, ok := Resolve(row.Headers, row.Values, "clinicaldocument.attachments", "attachments"); ok {
		inner["Attachments"] = ParseList(attachments)
	}
	return wrap("ClinicalDocument", inner)
}

func extractMedicalCoding(row model.RawRow) model.CanonicalRecord {
	claimID, ok := Resolve(row.Headers, row.Values, "claim.id", "claimid", "id")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"ID": claimID}
	if codes, ok := Resolve(row.Headers, row.Values, "claim.diagnosiscodes", "diagnosiscodes", "diagnosis_codes"); ok {
		inner["DiagnosisCodes"] = ParseList(codes)
	}
	if age, ok := Resolve(row.Headers, row.Values, "claim.patientage", "patientage", "age"); ok {
		inner["PatientAge"] = utils.ParseValue(age)
	}
	if sex, ok := Resolve(row.Headers, row.Values, "claim.patientsex", "patientsex", "sex", "gender"); ok {
		inner["PatientSex"] = sex
	}
	return wrap("Claim", inner)
}

func extractScrubbing(row model.RawRow) model.CanonicalRecord {
	externalID, ok := Resolve(row.Headers, row.Values, "claim.externalid", "externalid", "external_id", "referenceid")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"ExternalID": externalID}
	if providerID, ok := Resolve(row.Headers, row.Values, "claim.providerid", "providerid", "provider_id"); ok {
		inner["ProviderID"] = providerID
	}
	if dos, ok := Resolve(row.Headers, row.Values, "claim.dateofservice", "dateofservice", "servicedate"); ok {
		inner["DateOfService"] = dos
	}
	return wrap("Claim", inner)
}

func extractSubmission(row model.RawRow) model.CanonicalRecord {
	claimID, ok := Resolve(row.Headers, row.Values, "claimsubmission.claimid", "claimid", "claim_id")
	if !ok {
		return nil
	}
	externalID, ok := Resolve(row.Headers, row.Values, "claimsubmission.externalid", "externalid", "external_id")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"ClaimID": claimID, "ExternalID": externalID}
	if total, ok := Resolve(row.Headers, row.Values, "claimsubmission.total", "total", "amount"); ok {
		inner["Total"] = utils.ParseValue(total)
	}
	return wrap("ClaimSubmission", inner)
}

func extractRemittance(row model.RawRow) model.CanonicalRecord {
	remitID, ok := Resolve(row.Headers, row.Values, "remittance.remitid", "remitid", "remit_id")
	if !ok {
		return nil
	}
	claimRef, ok := Resolve(row.Headers, row.Values, "remittance.claimrefid", "claimrefid", "claim_ref_id")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"RemitID": remitID, "ClaimRefID": claimRef}
	if paid, ok := Resolve(row.Headers, row.Values, "remittance.paidamount", "paidamount", "paid_amount"); ok {
		inner["PaidAmount"] = utils.ParseValue(paid)
	}
	if date, ok := Resolve(row.Headers, row.Values, "remittance.paymentdate", "paymentdate", "payment_date"); ok {
		inner["PaymentDate"] = date
	}
	return wrap("Remittance", inner)
}

func extractDenial(row model.RawRow) model.CanonicalRecord {
	claimRef, ok := Resolve(row.Headers, row.Values, "denial.claimrefid", "claimrefid", "claim_ref_id")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"ClaimRefID": claimRef}
	if remitID, ok := Resolve(row.Headers, row.Values, "denial.remitid", "remitid", "remit_id"); ok {
		inner["RemitID"] = remitID
	}
	if action, ok := Resolve(row.Headers, row.Values, "denial.action", "action"); ok {
		inner["Action"] = action
	}
	return wrap("Denial", inner)
}

func extractResubmission(row model.RawRow) model.CanonicalRecord {
	originalRef, ok := Resolve(row.Headers, row.Values, "resubmission.originalclaimrefid", "originalclaimrefid", "original_claim_ref_id", "claimrefid")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"OriginalClaimRefID": originalRef}
	if kind, ok := Resolve(row.Headers, row.Values, "resubmission.resubmissiontype", "resubmissiontype", "type"); ok {
		inner["ResubmissionType"] = kind
	}
	if newID, ok := Resolve(row.Headers, row.Values, "resubmission.newclaimid", "newclaimid", "new_claim_id"); ok {
		inner["NewClaimID"] = newID
	}
	return wrap("Resubmission", inner)
}

func extractReconciliation(row model.RawRow) model.CanonicalRecord {
	reconID, ok := Resolve(row.Headers, row.Values, "reconciliation.reconid", "reconid", "recon_id")
	if !ok {
		return nil
	}
	inner := map[string]interface{}{"ReconID": reconID}
	if status, ok := Resolve(row.Headers, row.Values, "reconciliation.status", "status"); ok {
		inner["Status"] = status
	}
	return wrap("Reconciliation", inner)
}

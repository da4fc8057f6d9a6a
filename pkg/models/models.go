package models

// ExtractedFields represents the fixed set of document metadata fields returned to callers.
// The zero value is the all-empty default record.
type ExtractedFields struct {
	DocumentNumber          string `json:"document_number"`
	DateOfReplySubmission   string `json:"date_of_reply_submission"`
	Description             string `json:"description"`
	Forum                   string `json:"forum"`
	Type                    string `json:"type"`
	DateOfFiling            string `json:"date_of_filing"`
	PartyDetails            string `json:"party_details"`
	PaymentType             string `json:"payment_type"`
	LinkPaymentWithIssue    string `json:"link_payment_with_issue"`
	DateOfIssue             string `json:"date_of_issue"`
	DateOfExpiry            string `json:"date_of_expiry"`
	ReferenceNumber         string `json:"reference_number"`
	Nature                  string `json:"nature"`
	DateOfFilingApplication string `json:"date_of_filing_application"`
	TypeOfRefund            string `json:"type_of_refund"`
	LinkRefundWithIssue     string `json:"link_refund_with_issue"`
}

// FieldNames lists the JSON names of every ExtractedFields attribute, in prompt order.
var FieldNames = []string{
	"document_number",
	"date_of_reply_submission",
	"description",
	"forum",
	"type",
	"date_of_filing",
	"party_details",
	"payment_type",
	"link_payment_with_issue",
	"date_of_issue",
	"date_of_expiry",
	"reference_number",
	"nature",
	"date_of_filing_application",
	"type_of_refund",
	"link_refund_with_issue",
}

// Field returns a pointer to the attribute with the given JSON name, or nil if the name is unknown.
func (f *ExtractedFields) Field(name string) *string {
	switch name {
	case "document_number":
		return &f.DocumentNumber
	case "date_of_reply_submission":
		return &f.DateOfReplySubmission
	case "description":
		return &f.Description
	case "forum":
		return &f.Forum
	case "type":
		return &f.Type
	case "date_of_filing":
		return &f.DateOfFiling
	case "party_details":
		return &f.PartyDetails
	case "payment_type":
		return &f.PaymentType
	case "link_payment_with_issue":
		return &f.LinkPaymentWithIssue
	case "date_of_issue":
		return &f.DateOfIssue
	case "date_of_expiry":
		return &f.DateOfExpiry
	case "reference_number":
		return &f.ReferenceNumber
	case "nature":
		return &f.Nature
	case "date_of_filing_application":
		return &f.DateOfFilingApplication
	case "type_of_refund":
		return &f.TypeOfRefund
	case "link_refund_with_issue":
		return &f.LinkRefundWithIssue
	}
	return nil
}

// Status values carried by ResultEnvelope.Status
const (
	StatusFailure = 0
	StatusSuccess = 1
)

const (
	MessageSuccess = "Request processed successfully"
	MessageFailure = "Error processing request"
	NoErrorMsg     = "No Error"
)

// ErrorDetail is the error block of an envelope
type ErrorDetail struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// ResultData holds everything in an envelope except the status flag
type ResultData struct {
	RequestID string          `json:"request_id"`
	Message   string          `json:"message"`
	Content   ExtractedFields `json:"content"`
	Error     ErrorDetail     `json:"error"`
}

// ResultEnvelope is the uniform outcome of one extraction attempt.
// Callers branch on Status only; Data.Error.Msg is free text.
type ResultEnvelope struct {
	Status int        `json:"status"`
	Data   ResultData `json:"data"`
}

// Success wraps normalized fields in a success envelope.
func Success(content ExtractedFields) ResultEnvelope {
	return ResultEnvelope{
		Status: StatusSuccess,
		Data: ResultData{
			Message: MessageSuccess,
			Content: content,
			Error:   ErrorDetail{Code: 0, Msg: NoErrorMsg},
		},
	}
}

// Failure builds a failure envelope with empty content and the given detail.
func Failure(detail string) ResultEnvelope {
	return ResultEnvelope{
		Status: StatusFailure,
		Data: ResultData{
			Message: MessageFailure,
			Error:   ErrorDetail{Code: 1, Msg: detail},
		},
	}
}

// WithRequestID returns a copy of the envelope carrying the given request identifier.
func (e ResultEnvelope) WithRequestID(id string) ResultEnvelope {
	e.Data.RequestID = id
	return e
}

// GatewayError is the body of 4xx responses produced before the pipeline runs
type GatewayError struct {
	Detail string `json:"detail"`
}

// InternalErrorResponse is returned when a handler panics
type InternalErrorResponse struct {
	Status int               `json:"status"`
	Data   InternalErrorData `json:"data"`
}

type InternalErrorData struct {
	RequestID string      `json:"request_id"`
	Message   string      `json:"message"`
	Error     ErrorDetail `json:"error"`
}

package api

// EvalReq asks for one submission to be scored against the samples of a
// cached problem.
type EvalReq struct {
	EvalUuid string `json:"eval_uuid"`

	QKey     string `json:"qkey"`
	Language string `json:"language"`
	Code     string `json:"code"`

	// ProgressSubject, when set, receives streamed progress messages from
	// the NATS transport.
	ProgressSubject string `json:"progress_subject,omitempty"`

	// ResSqsUrl overrides the response queue of the SQS transport.
	ResSqsUrl string `json:"res_sqs_url,omitempty"`
}

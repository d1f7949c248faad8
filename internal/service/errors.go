package service

import (
	"errors"
	"fmt"
)

// Pipeline stages reported on submission-level failures.
const (
	StageValidate  = "validate"
	StageScore     = "score_questions"
	StageAggregate = "aggregate"
	StageSummarize = "summarize"
)

var (
	ErrMissingResponses    = errors.New("submission has no responses")
	ErrMissingQuestions    = errors.New("submission has no question details")
	ErrNoQuestionsAnalyzed = errors.New("no questions could be analyzed")
)

// SubmissionError wraps a submission-level failure with the submission id and
// the pipeline stage that failed. Per-question problems never produce one;
// they degrade to neutral question analyses instead.
type SubmissionError struct {
	SubmissionID string
	Stage        string
	Err          error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission %s failed at %s: %v", e.SubmissionID, e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func submissionErr(id, stage string, err error) *SubmissionError {
	return &SubmissionError{SubmissionID: id, Stage: stage, Err: err}
}

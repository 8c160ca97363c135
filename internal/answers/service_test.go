package answers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/qanda/internal/answers"
	"github.com/noah-isme/qanda/internal/questions"
	"github.com/noah-isme/qanda/internal/shared"
)

func TestServiceAddCensorsBeforeStoring(t *testing.T) {
	store := &memStore{questions: map[int64]bool{7: true}}
	svc := answers.NewService(store, maskCensor{})

	a, err := svc.Add(context.Background(), 9, answers.NewAnswer{Content: "shitty", QuestionID: 7})
	require.NoError(t, err)
	assert.Equal(t, "******", a.Content)
	assert.Equal(t, int64(9), a.AccountID)
	assert.Equal(t, int64(7), a.QuestionID)
}

func TestServiceAddKeepsErrorKinds(t *testing.T) {
	svc := answers.NewService(&memStore{}, maskCensor{})
	_, err := svc.Add(context.Background(), 9, answers.NewAnswer{Content: "x", QuestionID: 7})
	require.ErrorIs(t, err, questions.ErrQuestionNotFound)

	failing := answers.NewService(&memStore{questions: map[int64]bool{7: true}}, maskCensor{err: shared.NewError(shared.KindUpstream, "down")})
	_, err = failing.Add(context.Background(), 9, answers.NewAnswer{Content: "x", QuestionID: 7})
	assert.Equal(t, shared.KindUpstream, shared.KindOf(err))
}

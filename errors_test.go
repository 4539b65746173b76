package itseasy_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	itseasy "github.com/wiryonolau/itseasy-util"
)

func TestIssues_IsMatchesCode(t *testing.T) {
	err := itseasy.NewIssue(itseasy.CodePathNotFound, "a.b", "unresolved segment \"b\"")
	assert.True(t, errors.Is(err, itseasy.ErrPathNotFound))
	assert.False(t, errors.Is(err, itseasy.ErrValue))

	wrapped := fmt.Errorf("query: %w", err)
	assert.True(t, errors.Is(wrapped, itseasy.ErrPathNotFound))
	iss, ok := itseasy.AsIssues(wrapped)
	require.True(t, ok)
	assert.Equal(t, "a.b", iss[0].Path)
}

func TestIssues_ErrorSummary(t *testing.T) {
	var iss itseasy.Issues
	assert.Equal(t, "", iss.Error())
	for i := 0; i < 4; i++ {
		iss = itseasy.AppendIssues(iss, itseasy.Issue{Code: itseasy.CodeValueError, Path: fmt.Sprint(i)})
	}
	assert.Equal(t, "value_error at 0; value_error at 1; value_error at 2; ... (total 4)", iss.Error())
	assert.Equal(t, "path_not_found at x: gone", itseasy.NewIssue(itseasy.CodePathNotFound, "x", "gone").Error())
}

func TestWrapIssue_UnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := itseasy.WrapIssue(itseasy.CodeEncodeFailure, "", cause)
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, itseasy.ErrEncodeFailure))
	assert.Equal(t, "encode_failure: boom", err.Error())

	_, ok := itseasy.AsIssues(cause)
	assert.False(t, ok)
	_, ok = itseasy.AsIssues(nil)
	assert.False(t, ok)
}

func TestSetLogger_NilRestoresDefault(t *testing.T) {
	itseasy.SetLogger(nil)
	require.NotNil(t, itseasy.Logger())
}

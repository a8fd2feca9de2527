package service

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	require.Equal(t, "j***e@drivedesk.test", maskEmail(" Jane@DriveDesk.test "))
	require.Equal(t, "a***@drivedesk.test", maskEmail("ab@drivedesk.test"))
	require.Equal(t, "***", maskEmail("not-an-email"))
	require.Equal(t, "", maskEmail(""))
}

func TestPlainTextKeepsEntitiesLiteral(t *testing.T) {
	policy := bluemonday.StrictPolicy()
	require.Equal(t, "O'Brien & Co's file", plainText(policy, " <b>O'Brien</b> & Co's file "))
	require.Equal(t, "", plainText(policy, "<script>alert(1)</script>"))
}

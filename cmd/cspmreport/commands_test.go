package main

import (
	"bytes"
	"strings"
	"testing"
)

// execute runs the root command with args and returns combined output and error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestFailedAssetsCmd_RequiresLicenseID(t *testing.T) {
	_, err := execute(t, "export", "failedassets")
	if err == nil {
		t.Fatal("command succeeded without --license-id")
	}
	if !strings.Contains(err.Error(), "license-id") {
		t.Errorf("error should name the missing flag; got: %v", err)
	}
}

func TestFailedAssetsCmd_RejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("CSPM_APP_ID", "app")
	t.Setenv("CSPM_APP_SECRET", "secret")
	t.Setenv("CSPM_SUBSCRIPTION_KEY", "key")

	_, err := execute(t, "export", "failedassets",
		"--license-id", "2f5b0b06-6c3e-4b44-9f6d-9c6a14ab4c01",
		"--environment", "staging")
	if err == nil {
		t.Fatal("command accepted unknown environment")
	}
	if !strings.Contains(err.Error(), "staging") {
		t.Errorf("error should name the bad environment; got: %v", err)
	}
}

func TestFailedAssetsCmd_RejectsMalformedAccountID(t *testing.T) {
	t.Setenv("CSPM_APP_ID", "app")
	t.Setenv("CSPM_APP_SECRET", "secret")
	t.Setenv("CSPM_SUBSCRIPTION_KEY", "key")

	_, err := execute(t, "export", "failedassets",
		"--license-id", "2f5b0b06-6c3e-4b44-9f6d-9c6a14ab4c01",
		"--account-id", "not-a-uuid")
	if err == nil {
		t.Fatal("command accepted malformed account id")
	}
}

func TestFailedAssetsCmd_FailsWithoutSecrets(t *testing.T) {
	t.Setenv("CSPM_APP_ID", "")
	t.Setenv("CSPM_APP_SECRET", "")
	t.Setenv("CSPM_SUBSCRIPTION_KEY", "")

	_, err := execute(t, "export", "failedassets",
		"--license-id", "2f5b0b06-6c3e-4b44-9f6d-9c6a14ab4c01")
	if err == nil {
		t.Fatal("command succeeded without credentials in the environment")
	}
	if !strings.Contains(err.Error(), "CSPM_APP_ID") {
		t.Errorf("error should name the missing variable; got: %v", err)
	}
}

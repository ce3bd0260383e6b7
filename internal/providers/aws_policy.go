package providers

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/xeipuuv/gojsonschema"

	dserrors "github.com/systmms/opcred/internal/errors"
)

//go:embed policy_schema.json
var policySchemaJSON string

var accountIDPattern = regexp.MustCompile(`^\d{12}$`)

// PolicyTemplateName is the file looked up next to the config file.
const PolicyTemplateName = "iam_credential_manager_policy.json.tmpl"

// DefaultPolicyTemplatePath returns <config dir>/templates/<PolicyTemplateName>.
func DefaultPolicyTemplatePath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "templates", PolicyTemplateName)
}

// PolicyData is what a policy template is executed with.
type PolicyData struct {
	AccountID string
}

// CredentialManagerPolicy renders the IAM policy for the role that manages
// svc-* users. templatePath is a text/template producing JSON; when it does
// not exist the built-in policy is used. The result is schema-checked.
func CredentialManagerPolicy(accountID, templatePath string) (map[string]interface{}, error) {
	if !accountIDPattern.MatchString(accountID) {
		return nil, dserrors.UserError{
			Message:    fmt.Sprintf("Invalid AWS account ID %q", accountID),
			Suggestion: "Account IDs are 12 digits, e.g. 123456789012",
		}
	}

	var policy map[string]interface{}
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			rendered, err := renderPolicyTemplate(templatePath, PolicyData{AccountID: accountID})
			if err != nil {
				return nil, err
			}
			policy = rendered
		}
	}
	if policy == nil {
		policy = defaultCredentialManagerPolicy(accountID)
	}

	if err := validatePolicy(policy); err != nil {
		return nil, err
	}
	return policy, nil
}

func renderPolicyTemplate(path string, data PolicyData) (map[string]interface{}, error) {
	tmpl, err := template.New(filepath.Base(path)).Option("missingkey=error").ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse policy template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render policy template: %w", err)
	}

	var policy map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &policy); err != nil {
		return nil, dserrors.UserError{
			Message:    "Policy template did not produce valid JSON",
			Details:    err.Error(),
			Suggestion: fmt.Sprintf("Check %s", path),
			Err:        err,
		}
	}
	return policy, nil
}

func validatePolicy(policy map[string]interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(policySchemaJSON),
		gojsonschema.NewGoLoader(policy),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("policy is not a valid IAM document:\n  - %s", strings.Join(msgs, "\n  - "))
	}
	return nil
}

func defaultCredentialManagerPolicy(accountID string) map[string]interface{} {
	return map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []interface{}{
			map[string]interface{}{
				"Sid":    "ManageIAMServiceUsers",
				"Effect": "Allow",
				"Action": []interface{}{
					"iam:CreateUser",
					"iam:DeleteUser",
					"iam:CreateAccessKey",
					"iam:DeleteAccessKey",
					"iam:ListAccessKeys",
					"iam:UpdateAccessKey",
					"iam:PutUserPolicy",
					"iam:DeleteUserPolicy",
					"iam:AttachUserPolicy",
					"iam:DetachUserPolicy",
					"iam:TagUser",
					"iam:UntagUser",
				},
				"Resource": fmt.Sprintf("arn:aws:iam::%s:user/svc-*", accountID),
			},
			map[string]interface{}{
				"Sid":    "ManageSecretsManager",
				"Effect": "Allow",
				"Action": []interface{}{
					"secretsmanager:CreateSecret",
					"secretsmanager:UpdateSecret",
					"secretsmanager:DeleteSecret",
					"secretsmanager:GetSecretValue",
					"secretsmanager:TagResource",
				},
				"Resource": fmt.Sprintf("arn:aws:secretsmanager:*:%s:secret:lab/*", accountID),
			},
		},
	}
}

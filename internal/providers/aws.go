package providers

import (
	"context"

	"github.com/systmms/opcred/internal/credential"
	dserrors "github.com/systmms/opcred/internal/errors"
	"github.com/systmms/opcred/internal/onepassword"
)

// AWSManualRotation is the failure reported by AWS.Rotate.
const AWSManualRotation = "Manual rotation required for AWS credentials"

// AWS manages IAM service-user access keys.
type AWS struct {
	base
}

func (a *AWS) Name() string {
	return "aws"
}

// BuildCredential builds an access-key record for the IAM user svc-<service>.
// Region comes from the request, then the site config, then us-east-1.
// Empty fields are left out.
func (a *AWS) BuildCredential(ctx context.Context, opts Options) (*credential.Credential, error) {
	service := opts.Service
	if service == "" {
		service = "default"
	}

	region := opts.Region
	if region == "" {
		region = a.defaultRegion(opts.Site)
	}

	accountID := opts.AccountID
	if accountID == "" && opts.DetectAccount {
		if a.deps.Accounts == nil {
			return nil, dserrors.UserError{
				Message:    "Cannot detect AWS account",
				Suggestion: "Pass --account-id explicitly",
			}
		}
		id, err := a.deps.Accounts.AccountID(ctx)
		if err != nil {
			return nil, dserrors.ProviderError("aws", "account lookup", err)
		}
		accountID = id
	}

	fields := compactFields(
		onepassword.Field{Label: "Access Key ID", Value: opts.AccessKeyID},
		onepassword.Field{Label: "Secret Access Key", Value: opts.SecretAccessKey},
		onepassword.Field{Label: "Region", Value: region},
		onepassword.Field{Label: "Account ID", Value: accountID},
		onepassword.Field{Label: "IAM User", Value: "svc-" + service},
		onepassword.Field{Label: "Role ARN", Value: opts.RoleARN},
	)

	return credential.New(
		a.buildTitle("AWS", opts.Site, service),
		credential.WithCategory(credential.CategoryLogin),
		credential.WithVault(a.vault(opts.Vault, "aws_operations")),
		credential.WithTags(a.buildTags("aws", opts.Site, service, opts.Extra...)...),
		credential.WithFields(fields...),
	)
}

// Rotate does not touch anything. Issuing a new access key needs the IAM
// API, so it prints the manual procedure and reports failure.
func (a *AWS) Rotate(ctx context.Context, item *onepassword.Item) onepassword.Result {
	user := "<user>"
	if item != nil {
		if u := item.FieldValue("IAM User"); u != "" {
			user = u
		}
	}

	log := a.deps.Logger
	log.Warn("AWS credential rotation requires AWS API access.")
	log.Plain("To rotate manually:")
	log.Plain("  1. aws iam create-access-key --user-name %s", user)
	log.Plain("  2. Update 1Password with new credentials")
	log.Plain("  3. aws iam delete-access-key --user-name %s --access-key-id <old-key>", user)

	return onepassword.Fail(AWSManualRotation)
}

func compactFields(fields ...onepassword.Field) []onepassword.Field {
	out := make([]onepassword.Field, 0, len(fields))
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// AccountResolver finds the AWS account the caller's credentials belong to.
type AccountResolver interface {
	AccountID(ctx context.Context) (string, error)
}

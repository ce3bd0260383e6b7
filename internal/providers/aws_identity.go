package providers

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentityAPI is the slice of the STS client used here.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// STSAccountResolver asks STS which account the ambient credentials belong to.
type STSAccountResolver struct {
	client CallerIdentityAPI
}

// STSOptions selects the credentials an STSAccountResolver asks about.
// Every field is optional.
type STSOptions struct {
	Region  string
	Profile string
	// AccessKeyID and SecretAccessKey, when both set, replace the default
	// credential chain so the lookup reports the account those keys belong to.
	AccessKeyID     string
	SecretAccessKey string
}

// NewSTSAccountResolver loads the AWS config described by opts.
func NewSTSAccountResolver(ctx context.Context, opts STSOptions) (*STSAccountResolver, error) {
	var configOpts []func(*awsconfig.LoadOptions) error

	if opts.Region != "" {
		configOpts = append(configOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &STSAccountResolver{client: sts.NewFromConfig(cfg)}, nil
}

// NewSTSAccountResolverWithClient wraps an existing client.
func NewSTSAccountResolverWithClient(client CallerIdentityAPI) *STSAccountResolver {
	return &STSAccountResolver{client: client}
}

// AccountID calls sts:GetCallerIdentity.
func (r *STSAccountResolver) AccountID(ctx context.Context) (string, error) {
	out, err := r.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	account := aws.ToString(out.Account)
	if account == "" {
		return "", fmt.Errorf("STS returned no account ID")
	}
	return account, nil
}

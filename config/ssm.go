package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// MergeFromSSM overlays parameters stored under an SSM Parameter Store path
// onto the environment-derived config map. A parameter named
// "<prefix>/RESEND_API_KEY" becomes the "RESEND_API_KEY" key. Values already
// present in the map are overwritten; deployment secrets win over .env files.
func MergeFromSSM(ctx context.Context, config map[string]string, prefix string) error {
	if prefix == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config for ssm: %w", err)
	}
	client := ssm.NewFromConfig(awsCfg)

	prefix = "/" + strings.Trim(prefix, "/")
	var nextToken *string
	loaded := 0
	for {
		out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			return fmt.Errorf("get parameters by path %s: %w", prefix, err)
		}

		for _, param := range out.Parameters {
			if param.Name == nil || param.Value == nil {
				continue
			}
			name := strings.TrimPrefix(*param.Name, prefix)
			name = strings.TrimPrefix(name, "/")
			if name == "" {
				continue
			}
			config[name] = *param.Value
			loaded++
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	log.Info().Int("parameters", loaded).Str("prefix", prefix).Msg("Merged SSM parameters into config")
	return nil
}

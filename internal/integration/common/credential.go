package common

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	pkgHTTP "github.com/futig/ragchat-backend/pkg/http"
)

// CognitiveServicesScope is the token audience for Azure OpenAI.
const CognitiveServicesScope = "https://cognitiveservices.azure.com/.default"

type azureTokenSource struct {
	credential azcore.TokenCredential
	scopes     []string
}

// NewManagedIdentityTokenSource returns bearer tokens from the default Azure
// credential chain: managed identity in Azure, developer tooling locally.
func NewManagedIdentityTokenSource(scopes ...string) (pkgHTTP.TokenSource, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("create default azure credential: %w", err)
	}

	return NewTokenSource(cred, scopes...), nil
}

func NewTokenSource(credential azcore.TokenCredential, scopes ...string) pkgHTTP.TokenSource {
	return &azureTokenSource{
		credential: credential,
		scopes:     scopes,
	}
}

func (s *azureTokenSource) Token(ctx context.Context) (string, error) {
	token, err := s.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: s.scopes})
	if err != nil {
		return "", err
	}
	return token.Token, nil
}

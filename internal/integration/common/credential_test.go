package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCredential struct {
	scopes []string
	err    error
}

func (s *stubCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	s.scopes = opts.Scopes
	if s.err != nil {
		return azcore.AccessToken{}, s.err
	}
	return azcore.AccessToken{Token: "eyJ0eXAi", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestAzureTokenSource(t *testing.T) {
	cred := &stubCredential{}

	token, err := NewTokenSource(cred, CognitiveServicesScope).Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "eyJ0eXAi", token)
	assert.Equal(t, []string{CognitiveServicesScope}, cred.scopes)
}

func TestAzureTokenSource_Error(t *testing.T) {
	cred := &stubCredential{err: errors.New("ManagedIdentityCredential: no response from IMDS")}

	_, err := NewTokenSource(cred, CognitiveServicesScope).Token(context.Background())
	assert.ErrorIs(t, err, cred.err)
}

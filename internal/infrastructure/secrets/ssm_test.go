package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParameters struct {
	value *string
	err   error
	got   *ssm.GetParameterInput
}

func (f *fakeParameters) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: f.value}}, nil
}

func TestParameterStore_Get(t *testing.T) {
	api := &fakeParameters{value: aws.String("s3cr3t")}
	store := &ParameterStore{api: api}

	v, err := store.Get(context.Background(), "/cafecritique/jwt")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", v)
	assert.True(t, aws.ToBool(api.got.WithDecryption))
}

func TestParameterStore_GetFailures(t *testing.T) {
	_, err := (&ParameterStore{api: &fakeParameters{value: aws.String("")}}).Get(context.Background(), "p")
	assert.ErrorContains(t, err, "empty")

	_, err = (&ParameterStore{api: &fakeParameters{err: errors.New("denied")}}).Get(context.Background(), "p")
	assert.ErrorContains(t, err, "denied")
}

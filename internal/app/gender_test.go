package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insquote/internal/domain"
)

// fakeNameClient records the names it was asked about and replies with a
// canned gender or error.
type fakeNameClient struct {
	gender domain.Gender
	err    error
	names  []string
}

func (f *fakeNameClient) ResolveFirstName(_ context.Context, firstName string) (domain.Gender, error) {
	f.names = append(f.names, firstName)

	return f.gender, f.err
}

func newGenderService(client *fakeNameClient) *GenderService {
	return NewGenderService(GenderServiceConfig{NameClient: client})
}

func TestGenderService_TitleShortCircuits(t *testing.T) {
	client := &fakeNameClient{gender: domain.GenderMale}
	svc := newGenderService(client)

	res := svc.Infer(context.Background(), "Sra. Maria Silva")

	assert.Equal(t, domain.GenderFemale, res.Gender)
	assert.Equal(t, domain.GenderSourceTitle, res.Source)
	assert.Empty(t, client.names, "title match must not trigger a lookup")
}

func TestGenderService_NameLookup(t *testing.T) {
	client := &fakeNameClient{gender: domain.GenderFemale}
	svc := newGenderService(client)

	res := svc.Infer(context.Background(), "Maria Silva")

	assert.Equal(t, domain.GenderFemale, res.Gender)
	assert.Equal(t, domain.GenderSourceName, res.Source)
	require.Equal(t, []string{"Maria"}, client.names)
}

func TestGenderService_SkipsUnrecognizedTitle(t *testing.T) {
	// "Mx." is not a known honorific but the trailing period marks it as a
	// title, so the lookup uses the next token.
	client := &fakeNameClient{gender: domain.GenderMale}
	svc := newGenderService(client)

	res := svc.Infer(context.Background(), "Mx. Carlos Pereira")

	assert.Equal(t, domain.GenderMale, res.Gender)
	require.Equal(t, []string{"Carlos"}, client.names)
}

func TestGenderService_TrimsPunctuationFromName(t *testing.T) {
	client := &fakeNameClient{gender: domain.GenderFemale}
	svc := newGenderService(client)

	res := svc.Infer(context.Background(), "Maria.")

	assert.Equal(t, domain.GenderFemale, res.Gender)
	require.Equal(t, []string{"Maria"}, client.names)
}

func TestGenderService_DefaultsOnClientError(t *testing.T) {
	client := &fakeNameClient{err: errors.New("connection refused")}
	svc := newGenderService(client)

	res := svc.Infer(context.Background(), "Maria Silva")

	assert.Equal(t, domain.GenderMale, res.Gender)
	assert.Equal(t, domain.GenderSourceName, res.Source)
}

func TestGenderService_DefaultsOnInconclusivePrediction(t *testing.T) {
	client := &fakeNameClient{
		err: fmt.Errorf("%w: no prediction for name %q", domain.ErrInconclusive, "Zyx"),
	}
	svc := newGenderService(client)

	res := svc.Infer(context.Background(), "Zyx Qwerty")

	assert.Equal(t, domain.GenderMale, res.Gender)
}

func TestGenderService_DefaultsOnUnknownGender(t *testing.T) {
	client := &fakeNameClient{gender: domain.GenderUnknown}
	svc := newGenderService(client)

	res := svc.Infer(context.Background(), "Alex Santos")

	assert.Equal(t, domain.GenderMale, res.Gender)
}

func TestGenderService_EmptyText(t *testing.T) {
	client := &fakeNameClient{gender: domain.GenderFemale}
	svc := newGenderService(client)

	res := svc.Infer(context.Background(), "   ")

	assert.Equal(t, domain.GenderMale, res.Gender)
	assert.Equal(t, domain.GenderSourceName, res.Source)
	assert.Empty(t, client.names)
}

func TestGenderService_BareTitle(t *testing.T) {
	svc := newGenderService(&fakeNameClient{})

	res := svc.Infer(context.Background(), "Madame")

	assert.Equal(t, domain.GenderFemale, res.Gender)
	assert.Equal(t, domain.GenderSourceTitle, res.Source)
}

func TestGenderService_LookupIsBounded(t *testing.T) {
	var deadlineSet bool
	client := &deadlineProbe{set: &deadlineSet}
	svc := NewGenderService(GenderServiceConfig{
		NameClient: client,
		Timeout:    50 * time.Millisecond,
	})

	svc.Infer(context.Background(), "Maria")

	assert.True(t, deadlineSet, "lookup context must carry a deadline")
}

type deadlineProbe struct {
	set *bool
}

func (p *deadlineProbe) ResolveFirstName(ctx context.Context, _ string) (domain.Gender, error) {
	_, ok := ctx.Deadline()
	*p.set = ok

	return domain.GenderFemale, nil
}

package cmd

import (
	"github.com/spf13/pflag"

	"appshelf/internal/domain"
)

// duplicatesFlag is a pflag.Value for the duplicate id policy
type duplicatesFlag struct {
	policy domain.DuplicatePolicy
}

var _ pflag.Value = (*duplicatesFlag)(nil)

func (f *duplicatesFlag) String() string {
	return f.policy.String()
}

func (f *duplicatesFlag) Set(s string) error {
	p, err := domain.ParseDuplicatePolicy(s)
	if err != nil {
		return err
	}
	f.policy = p
	return nil
}

func (f *duplicatesFlag) Type() string {
	return "policy"
}

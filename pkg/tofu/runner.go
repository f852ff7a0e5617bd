package tofu

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-exec/tfexec"
)

// Init initializes the working directory.
func Init(ctx context.Context, tf *tfexec.Terraform) error {
	if err := tf.Init(signalSafeContext(ctx), tfexec.Upgrade(false)); err != nil {
		return fmt.Errorf("tofu init failed: %w", err)
	}
	return nil
}

// Plan runs a speculative plan and reports whether changes are pending.
func Plan(ctx context.Context, tf *tfexec.Terraform) (bool, error) {
	changes, err := tf.Plan(signalSafeContext(ctx))
	if err != nil {
		return false, fmt.Errorf("tofu plan failed: %w", err)
	}
	return changes, nil
}

// Apply reconciles the desired state. Idempotent: applying the same tfvars
// twice converges to the same infrastructure.
func Apply(ctx context.Context, tf *tfexec.Terraform) error {
	if err := tf.Apply(signalSafeContext(ctx)); err != nil {
		return fmt.Errorf("tofu apply failed: %w", err)
	}
	return nil
}

// Destroy tears down everything the working directory manages.
func Destroy(ctx context.Context, tf *tfexec.Terraform) error {
	if err := tf.Destroy(signalSafeContext(ctx)); err != nil {
		return fmt.Errorf("tofu destroy failed: %w", err)
	}
	return nil
}

// Output reads the current output values.
func Output(ctx context.Context, tf *tfexec.Terraform) (map[string]tfexec.OutputMeta, error) {
	out, err := tf.Output(signalSafeContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("tofu output failed: %w", err)
	}
	return out, nil
}

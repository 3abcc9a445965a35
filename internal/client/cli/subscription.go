package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/replaycoach/internal/client/api"
)

// Subscription shows the account's current plan state.
func (a *App) Subscription(ctx context.Context) error {
	sub, err := a.subscription.Get(ctx)
	if err != nil {
		printlnFn(a.subscription.Err())
		return err
	}
	printlnFn("Plan:  ", sub.Plan)
	printlnFn("Status:", sub.Status)
	if sub.CurrentPeriodEnd != "" {
		printlnFn("Period ends:", sub.CurrentPeriodEnd)
	}
	if sub.CancelAtPeriodEnd {
		printlnFn("Cancels at period end; use 'resume' to keep the plan")
	}
	return nil
}

// Billing lists the billing history. The data is optional: when the
// endpoint fails nothing is shown, no error.
func (a *App) Billing(ctx context.Context) error {
	items := a.subscription.BillingHistory(ctx)
	if len(items) == 0 {
		printlnFn("No billing history")
		return nil
	}
	for _, item := range items {
		printlnFn(fmt.Sprintf("%s  $%.2f  %s", item.Date, item.Amount, item.Status))
	}
	return nil
}

// Checkout obtains the provider-hosted payment page URL for a plan.
func (a *App) Checkout(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("usage: checkout <price_id>")
		return nil
	}
	url, err := a.subscription.Checkout(ctx, args[0])
	if err != nil {
		printlnFn(api.ErrorMessage(err, "Failed to create checkout session"))
		return err
	}
	printlnFn("Open this URL to complete payment:")
	printlnFn(url)
	return nil
}

// CancelPlan flags the subscription for cancellation.
func (a *App) CancelPlan(ctx context.Context) error {
	sub, err := a.subscription.Cancel(ctx)
	if err != nil {
		printlnFn(api.ErrorMessage(err, "Failed to cancel subscription"))
		return err
	}
	printlnFn("Subscription will end; status:", sub.Status)
	return nil
}

// ResumePlan undoes a pending cancellation.
func (a *App) ResumePlan(ctx context.Context) error {
	sub, err := a.subscription.Resume(ctx)
	if err != nil {
		printlnFn(api.ErrorMessage(err, "Failed to resume subscription"))
		return err
	}
	printlnFn("Subscription resumed; status:", sub.Status)
	return nil
}

package assistant

import (
	"context"
	"fmt"
	"sync/atomic"
)

type Sample struct {
	Name        string
	Description string
	Code        string
}

// Samples are the components the offline provider hands out.
var Samples = []Sample{
	{
		Name:        "WelcomeCard",
		Description: "Greeting card with a call to action",
		Code: `import React from 'react';

export default function WelcomeCard() {
  return (
    <section className="max-w-md mx-auto rounded-xl bg-white p-8 shadow">
      <h2 className="text-2xl font-bold text-gray-900">Glad to have you here</h2>
      <p className="mt-3 text-gray-600">Set up your workspace in a few minutes</p>
      <button className="mt-6 rounded-lg bg-blue-600 px-5 py-2 text-white" aria-label="Begin setup">
        Begin setup
      </button>
    </section>
  );
}`,
	},
	{
		Name:        "PricingCard",
		Description: "Single plan with a feature list",
		Code: `import React from 'react';

export default function PricingCard() {
  return (
    <div className="max-w-sm mx-auto rounded-lg bg-white p-6 shadow-lg">
      <h3 className="text-xl font-semibold">Team plan</h3>
      <ul className="mt-4 space-y-2 text-gray-600">
        <li>Shared components</li>
        <li>Translation exports</li>
        <li>Email support</li>
      </ul>
      <button className="mt-6 w-full rounded bg-indigo-600 py-2 text-white">
        Choose this plan
      </button>
    </div>
  );
}`,
	},
	{
		Name:        "NewsletterForm",
		Description: "Email capture form",
		Code: `import React from 'react';

export default function NewsletterForm() {
  return (
    <form className="max-w-md mx-auto space-y-4 rounded-lg bg-white p-6 shadow" title="Newsletter signup">
      <label className="block text-sm font-medium text-gray-700">Stay in the loop</label>
      <input type="email" className="w-full rounded border px-3 py-2" placeholder="you@example.com" />
      <button type="submit" className="w-full rounded bg-emerald-600 py-2 text-white">
        Subscribe
      </button>
    </form>
  );
}`,
	},
}

// Mock answers every prompt with the next sample, cycling through Samples.
type Mock struct {
	next atomic.Uint64
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Complete(ctx context.Context, messages []Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s := Samples[(m.next.Add(1)-1)%uint64(len(Samples))]
	return fmt.Sprintf("Here is a %s: %s.\n\n```tsx\n%s\n```", s.Name, s.Description, s.Code), nil
}

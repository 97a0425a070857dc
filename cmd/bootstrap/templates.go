package main

import "webmatic-api/internal/domain/entity"

// builtinTemplates 内置模板清单
func builtinTemplates() []*entity.Template {
	crm := entity.NewTemplate(
		"SaaS CRM",
		"crm",
		"Customer relationship management SaaS with contact pipelines, deal tracking and activity timelines.",
	)
	crm.Tags = []string{"saas", "crm", "sales"}
	crm.Prompts = entity.TemplatePrompts{
		System: "You are building a multi-tenant CRM SaaS. Favor simple CRUD flows and a clean pipeline board.",
		User:   "Build a CRM where sales teams manage contacts, companies and deals through pipeline stages.",
	}
	crm.Entities = []string{"Contact", "Company", "Deal", "Activity", "PipelineStage"}
	crm.APIEndpoints = []string{
		"CRUD /contacts", "CRUD /companies", "CRUD /deals",
		"POST /deals/:id/stage", "GET /activities?contact_id=",
	}
	crm.UIStructure = []string{
		"Pipeline kanban board", "Contact detail with activity timeline",
		"Company directory with search", "Deal forecast dashboard",
	}
	crm.Integrations = []string{"Email sync placeholder", "Calendar placeholder"}
	crm.AcceptanceCriteria = []string{
		"Deals move across pipeline stages with audit trail",
		"Contacts searchable by name, company and tag",
	}
	crm.Tests = []string{"Deal stage transition tests", "Contact search API tests"}

	billing := entity.NewTemplate(
		"Billing SaaS",
		"billing",
		"Subscription billing platform with plans, invoices, payment collection and dunning.",
	)
	billing.Tags = []string{"saas", "billing", "payments"}
	billing.Prompts = entity.TemplatePrompts{
		System: "You are building a subscription billing platform. Correctness of money math matters most.",
		User:   "Build a billing system with plans, subscriptions, invoices and Stripe payment collection.",
	}
	billing.Entities = []string{"Plan", "Subscription", "Invoice", "Payment", "Customer"}
	billing.APIEndpoints = []string{
		"CRUD /plans", "POST /subscriptions", "POST /subscriptions/:id/cancel",
		"GET /invoices", "POST /payments/webhook",
	}
	billing.UIStructure = []string{
		"Plan catalog with pricing cards", "Customer subscription overview",
		"Invoice list with status filters", "Revenue dashboard",
	}
	billing.Integrations = []string{"Stripe integration placeholder", "Tax calculation placeholder"}
	billing.AcceptanceCriteria = []string{
		"Invoices generated on billing cycle boundaries",
		"Failed payments enter a dunning flow",
	}
	billing.Tests = []string{"Proration calculation tests", "Webhook idempotency tests"}

	analytics := entity.NewTemplate(
		"Analytics Dashboard",
		"analytics",
		"Event analytics product with ingestion, aggregation and customizable dashboards.",
	)
	analytics.Tags = []string{"analytics", "dashboard", "events"}
	analytics.Prompts = entity.TemplatePrompts{
		System: "You are building an event analytics product. Query latency and chart clarity matter most.",
		User:   "Build an analytics tool that ingests events and renders funnels, retention and custom charts.",
	}
	analytics.Entities = []string{"Event", "Funnel", "Dashboard", "Chart", "Segment"}
	analytics.APIEndpoints = []string{
		"POST /events", "GET /funnels/:id/results",
		"CRUD /dashboards", "CRUD /charts", "GET /segments/:id/users",
	}
	analytics.UIStructure = []string{
		"Dashboard grid with draggable charts", "Funnel builder",
		"Retention cohort table", "Segment explorer",
	}
	analytics.Integrations = []string{"SDK snippet generator", "Slack alerts placeholder"}
	analytics.AcceptanceCriteria = []string{
		"Events queryable within seconds of ingestion",
		"Dashboards shareable via read-only links",
	}
	analytics.Tests = []string{"Funnel aggregation tests", "Event ingestion validation tests"}

	return []*entity.Template{crm, billing, analytics}
}

package hosting

// HostingPlanSpec describes the compute plan to provision. Kind is fixed to
// "functionapp" in this accelerator; the tier selects between the Flex
// Consumption schema and the classic Consumption/Premium/Standard schema.
type HostingPlanSpec struct {
	Name          string
	Location      string
	SkuTier       SkuTier
	SkuName       string
	ZoneRedundant bool
}

// HostingPlanConfig is the provider-ready hosting plan document.
type HostingPlanConfig struct {
	Name       string                `json:"name"`
	Location   string                `json:"location"`
	Kind       string                `json:"kind"`
	Sku        SkuConfig             `json:"sku"`
	Properties HostingPlanProperties `json:"properties"`
}

// SkuConfig identifies the plan SKU.
type SkuConfig struct {
	Name string `json:"name"`
	Tier string `json:"tier"`
}

// HostingPlanProperties carries the tier-dependent plan properties.
//
// ZoneRedundant is a pointer with omitempty on purpose: the provider schema
// for non-Flex tiers rejects the field regardless of value, so it must be
// entirely absent from the serialized document, not false.
type HostingPlanProperties struct {
	Reserved      bool  `json:"reserved"`
	ZoneRedundant *bool `json:"zoneRedundant,omitempty"`
}

// PlanReference is the subset of a resolved hosting plan that the Function
// App resolver needs: the resource identifier and the tier that selects the
// site configuration shape.
type PlanReference struct {
	ID      string
	SkuTier SkuTier
}

// ResolveHostingPlan produces the hosting plan document for the given spec.
// The SKU name must belong to the tier's allowed set. ZoneRedundant is
// emitted only under Flex Consumption; for every other tier the field is
// omitted from the document.
func ResolveHostingPlan(spec HostingPlanSpec) (*HostingPlanConfig, error) {
	if err := validateSku(spec.SkuTier, spec.SkuName); err != nil {
		return nil, err
	}
	if spec.Name == "" {
		return nil, newError(MissingRequiredReference, "name", "hosting plan name is required")
	}
	if spec.Location == "" {
		return nil, newError(MissingRequiredReference, "location", "hosting plan location is required")
	}

	cfg := &HostingPlanConfig{
		Name:     spec.Name,
		Location: spec.Location,
		Kind:     "functionapp",
		Sku: SkuConfig{
			Name: spec.SkuName,
			Tier: string(spec.SkuTier),
		},
		Properties: HostingPlanProperties{
			// Linux worker pool; the accelerator runs Linux-only runtimes.
			Reserved: true,
		},
	}

	if spec.SkuTier == TierFlexConsumption {
		zr := spec.ZoneRedundant
		cfg.Properties.ZoneRedundant = &zr
	}

	return cfg, nil
}

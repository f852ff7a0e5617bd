package hosting

// SkuTier is the pricing-and-capability class of a Functions hosting plan.
type SkuTier string

const (
	TierFlexConsumption SkuTier = "FlexConsumption"
	TierDynamic         SkuTier = "Dynamic"
	TierElasticPremium  SkuTier = "ElasticPremium"
	TierStandard        SkuTier = "Standard"
)

// allowedSkuNames maps each tier to its valid SKU names. No SKU name is valid
// across tiers; membership is checked at resolution time.
var allowedSkuNames = map[SkuTier][]string{
	TierFlexConsumption: {"FC1"},
	TierDynamic:         {"Y1"},
	TierElasticPremium:  {"EP1", "EP2", "EP3"},
	TierStandard:        {"S1", "S2", "S3", "P0v3", "P1v3", "P2v3", "P3v3"},
}

// ValidTiers lists the supported hosting plan tiers.
var ValidTiers = []SkuTier{TierFlexConsumption, TierDynamic, TierElasticPremium, TierStandard}

// IsValidTier checks if the tier string is a supported hosting plan tier.
func IsValidTier(tier SkuTier) bool {
	_, ok := allowedSkuNames[tier]
	return ok
}

// validateSku checks that name belongs to the allowed SKU set for tier.
func validateSku(tier SkuTier, name string) error {
	names, ok := allowedSkuNames[tier]
	if !ok {
		return newError(InvalidSkuForTier, "skuTier", "unknown tier %q, must be one of %v", tier, ValidTiers)
	}
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	return newError(InvalidSkuForTier, "skuName", "SKU %q is not valid for tier %q (allowed: %v)", name, tier, names)
}

package engine

import (
	"strings"

	"github.com/Itish41/asset-audit/models"
)

// Delta is the difference between an asset's baseline and what the auditor observed.
type Delta struct {
	Status models.AssetStatus

	LocationChanged bool
	FromLocation    string
	ToLocation      string

	UserChanged          bool
	PreviouslyUnassigned bool
	FromUser             string
	ToUser               string
}

// Compare computes the baseline delta of an asset. An unobserved (blank)
// current location or user never counts as a change.
func Compare(a models.AuditedAsset) Delta {
	d := Delta{
		Status:       a.CurrentStatus,
		FromLocation: strings.TrimSpace(a.OriginalLocation),
		ToLocation:   strings.TrimSpace(a.CurrentLocation),
		FromUser:     strings.TrimSpace(a.OriginalUser),
		ToUser:       strings.TrimSpace(a.CurrentUser),
	}
	d.LocationChanged = d.ToLocation != "" && d.ToLocation != d.FromLocation
	d.UserChanged = d.ToUser != "" && d.ToUser != d.FromUser
	d.PreviouslyUnassigned = d.UserChanged && d.FromUser == ""
	return d
}

package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"sdntopo/internal/domain"
)

// onosSwitch is one element of /wm/onos/topology/switches/json
type onosSwitch struct {
	DPID  string `json:"dpid"`
	State string `json:"state"`
}

type onosEndpoint struct {
	DPID string `json:"dpid"`
}

// onosLink accepts both the nested {src:{dpid}} form and the flat
// {"src-switch"} form served by older releases
type onosLink struct {
	Src       *onosEndpoint `json:"src"`
	Dst       *onosEndpoint `json:"dst"`
	SrcSwitch string        `json:"src-switch"`
	DstSwitch string        `json:"dst-switch"`
	Type      int           `json:"type"`
}

type onosRegistration struct {
	ControllerID string `json:"controllerId"`
}

// DecodeSwitches parses the switches endpoint. Entries without a DPID are skipped.
func DecodeSwitches(r io.Reader) ([]domain.Switch, error) {
	var raw []onosSwitch
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse switches: %w", err)
	}

	switches := make([]domain.Switch, 0, len(raw))
	for _, s := range raw {
		if s.DPID == "" {
			continue
		}
		switches = append(switches, domain.Switch{DPID: s.DPID, State: s.State})
	}
	return switches, nil
}

// DecodeLinks parses the links endpoint
func DecodeLinks(r io.Reader) ([]domain.LinkRecord, error) {
	var raw []onosLink
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse links: %w", err)
	}

	links := make([]domain.LinkRecord, 0, len(raw))
	for i, l := range raw {
		rec := domain.LinkRecord{
			SrcDPID: l.SrcSwitch,
			DstDPID: l.DstSwitch,
			Type:    l.Type,
		}
		if l.Src != nil {
			rec.SrcDPID = l.Src.DPID
		}
		if l.Dst != nil {
			rec.DstDPID = l.Dst.DPID
		}
		if rec.SrcDPID == "" || rec.DstDPID == "" {
			return nil, fmt.Errorf("failed to parse links: link %d has no endpoints", i)
		}
		links = append(links, rec)
	}
	return links, nil
}

// DecodeRegistry parses the switch registry, a JSON object mapping DPIDs to
// registration arrays. Entries are returned in document order.
func DecodeRegistry(r io.Reader) ([]domain.RegistryEntry, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	if tok == nil {
		return []domain.RegistryEntry{}, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("failed to parse registry: expected object, got %v", tok)
	}

	entries := make([]domain.RegistryEntry, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse registry: %w", err)
		}
		dpid, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse registry: unexpected key %v", tok)
		}

		var regs []onosRegistration
		if err := dec.Decode(&regs); err != nil {
			return nil, fmt.Errorf("failed to parse registry entry %s: %w", dpid, err)
		}

		ids := make([]string, 0, len(regs))
		for _, reg := range regs {
			ids = append(ids, reg.ControllerID)
		}
		entries = append(entries, domain.RegistryEntry{DPID: dpid, ControllerIDs: ids})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	return entries, nil
}

// DecodeControllers parses the controllers endpoint, a JSON array of
// controller IDs
func DecodeControllers(r io.Reader) ([]string, error) {
	var ids []string
	if err := json.NewDecoder(r).Decode(&ids); err != nil {
		return nil, fmt.Errorf("failed to parse controllers: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

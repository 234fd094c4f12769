package crfio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lcrf/crfdata"
)

// ReadInstances parses r's item-file grammar and appends every instance
// found to ds, tagging each with groupID. Returns the number of instances
// appended.
func ReadInstances(r io.Reader, ds *crfdata.Dataset, groupID int) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var items []crfdata.Item
	var labels []int
	weight := 1.0
	lineNo := 0
	count := 0

	flush := func() error {
		if len(items) == 0 {
			return nil
		}
		inst := crfdata.Instance{Items: items, Labels: labels, Weight: weight, GroupID: groupID}
		if err := ds.Append(inst); err != nil {
			return errors.Wrapf(err, "crfio: line %d: invalid instance", lineNo)
		}
		items, labels, weight = nil, nil, 1.0
		count++
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		fields := strings.Fields(line)

		if len(fields) == 0 {
			if err := flush(); err != nil {
				return count, err
			}
			continue
		}

		first := fields[0]
		if strings.HasPrefix(first, "@") {
			if first != "@weight" {
				return count, errors.Wrapf(ErrUnrecognizedDeclaration, "crfio: line %d: %q", lineNo, first)
			}
			if len(fields) < 2 {
				return count, errors.Wrapf(ErrBadWeight, "crfio: line %d", lineNo)
			}
			w, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return count, errors.Wrapf(ErrBadWeight, "crfio: line %d: %q", lineNo, fields[1])
			}
			weight = w
			continue
		}

		lid := ds.Labels.Put(first)
		item := crfdata.NewItem()
		for _, tok := range fields[1:] {
			name, value, err := splitAttrToken(tok)
			if err != nil {
				return count, errors.Wrapf(err, "crfio: line %d: %q", lineNo, tok)
			}
			aid := ds.Attrs.Put(name)
			item = item.AddValue(aid, value)
		}
		items = append(items, item)
		labels = append(labels, lid)
	}
	if err := scanner.Err(); err != nil {
		return count, errors.Wrap(err, "crfio: read")
	}
	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

// splitAttrToken splits "attr" or "attr:value" into its name and value,
// defaulting value to 1.0 when no colon (or an empty value) is present.
func splitAttrToken(tok string) (name string, value float64, err error) {
	name, valueStr, hasValue := strings.Cut(tok, ":")
	if !hasValue || valueStr == "" {
		return name, 1.0, nil
	}
	v, parseErr := strconv.ParseFloat(valueStr, 64)
	if parseErr != nil {
		return "", 0, errors.Wrap(parseErr, "crfio: malformed attribute value")
	}
	return name, v, nil
}

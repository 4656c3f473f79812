package calibration

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

type xmlStorage struct {
	XMLName xml.Name  `xml:"opencv_storage"`
	Nodes   []xmlNode `xml:",any"`
}

type xmlNode struct {
	XMLName xml.Name
	TypeID  string `xml:"type_id,attr"`
	Rows    string `xml:"rows"`
	Cols    string `xml:"cols"`
	Data    string `xml:"data"`
	Text    string `xml:",chardata"`
}

func decodeXML(data []byte) (map[string]rawNode, error) {
	var storage xmlStorage
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&storage); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	nodes := make(map[string]rawNode, len(storage.Nodes))
	for _, n := range storage.Nodes {
		name := n.XMLName.Local
		if n.TypeID != "opencv-matrix" {
			nodes[name] = rawNode{values: strings.Fields(n.Text)}
			continue
		}

		rows, err := strconv.Atoi(strings.TrimSpace(n.Rows))
		if err != nil {
			return nil, fmt.Errorf("%s: bad rows %q", name, n.Rows)
		}
		cols, err := strconv.Atoi(strings.TrimSpace(n.Cols))
		if err != nil {
			return nil, fmt.Errorf("%s: bad cols %q", name, n.Cols)
		}
		nodes[name] = rawNode{rows: rows, cols: cols, values: strings.Fields(n.Data)}
	}
	return nodes, nil
}

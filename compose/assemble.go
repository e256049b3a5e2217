package compose

// otherProperty is the parent-property bucket for occurrences whose path
// is too short to name one.
const otherProperty = "other"

// assemble groups documented occurrences into the final [ServicesDoc].
// Occurrences without a description were already reported as warnings and
// are dropped here.
func (p *Parser) assemble(path string, s *scanState) *ServicesDoc {
	display := path
	if p.displayPath != nil {
		display = p.displayPath(path)
	}

	doc := &ServicesDoc{
		SourceFile: display,
		Warnings:   s.warnings,
	}

	byService := make(map[string]*ServiceDoc)

	var order []string

	for _, o := range s.occurrences {
		if o.description == "" {
			continue
		}

		name := "unknown"
		if len(o.path) > 1 {
			name = o.path[1]
		}

		svc, ok := byService[name]
		if !ok {
			svc = &ServiceDoc{Name: name}
			byService[name] = svc
			order = append(order, name)
		}

		prop := otherProperty
		if len(o.path) > 2 {
			prop = o.path[2]
		}

		svc.EnvVars = append(svc.EnvVars, EnvVarDoc{
			Name:           o.name,
			Description:    o.description,
			DefaultValue:   o.def,
			ParentProperty: prop,
		})
	}

	names := order
	if p.keepEmptyServices {
		names = s.serviceOrder
	}

	for _, name := range names {
		svc, ok := byService[name]
		if !ok {
			svc = &ServiceDoc{Name: name}
		}

		svc.Description = s.serviceDescs[name]
		doc.Services = append(doc.Services, svc)
	}

	return doc
}

package handlers

// Validator checks the shape of a decoded request field. Content rules
// (blank values, password length) belong to the domain packages.
type Validator struct {
	location string
	field    string
	value    *string
}

func (rv *Validator) Required() *CustomError {
	if rv.value == nil {
		return &CustomError{Location: rv.location, Param: rv.field, Msg: "is required"}
	}

	return nil
}

func requireFields(location string, fields map[string]*string, order ...string) []*CustomError {
	validations := make([]*CustomError, 0, len(order))
	for _, name := range order {
		v := &Validator{location: location, field: name, value: fields[name]}
		validations = append(validations, v.Required())
	}

	return mergeErrors(validations...)
}

func mergeErrors(validations ...*CustomError) []*CustomError {
	result := make([]*CustomError, 0, 2)

	for _, err := range validations {
		if err == nil {
			continue
		}

		result = append(result, err)
	}

	return result
}

package api

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	envTag = "env"
)

var (
	ErrNotPtr    = errors.New("input must be a pointer")
	ErrNotStruct = errors.New("input must be a struct")
)

// OverrideFromEnv sets config fields from environment variables named PREFIX_FIELD, PREFIX_FIELD_NESTEDFIELD, etc
func OverrideFromEnv(config interface{}, prefix string, environmentVariables []string) error {
	return OverrideFromEnvMap(config, prefix, transformEnvironmentVariablesToMap(environmentVariables))
}

func OverrideFromEnvMap(config interface{}, prefix string, environmentVariables map[string]string) error {
	if !strings.HasSuffix(prefix, "_") {
		prefix = strings.ToUpper(prefix) + "_"
	}

	environmentVariables = filterEnvironmentVariablesByPrefix(environmentVariables, prefix)
	if len(environmentVariables) == 0 {
		return nil
	}

	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Ptr {
		return ErrNotPtr
	}

	e := v.Elem()
	if e.Kind() != reflect.Struct {
		return ErrNotStruct
	}

	t := e.Type()

	for i := 0; i < t.NumField(); i++ {
		ef := e.Field(i)
		tf := t.Field(i)

		if !ef.CanSet() {
			continue
		}

		fieldEnvarName := prefix + strings.ToUpper(tf.Name)
		if tag := tf.Tag.Get(envTag); tag != "" {
			fieldEnvarName = prefix + strings.ToUpper(tag)
		}

		if val, ok := environmentVariables[fieldEnvarName]; ok {
			log.Debug().Msgf("Envvar %v exists, overriding config value", fieldEnvarName)
			if err := processField(val, ef); err != nil {
				return fmt.Errorf("%s(%q): %w", tf.Name, val, err)
			}
			continue
		}

		nestedFieldsPrefix := fieldEnvarName + "_"
		nestedEnvironmentVariables := filterEnvironmentVariablesByPrefix(environmentVariables, nestedFieldsPrefix)
		if len(nestedEnvironmentVariables) == 0 {
			continue
		}

		switch ef.Kind() {
		case reflect.Ptr:
			if ef.IsNil() {
				if ef.Type().Elem().Kind() != reflect.Struct {
					continue
				}
				ef.Set(reflect.New(ef.Type().Elem()))
			}
			if err := OverrideFromEnvMap(ef.Interface(), nestedFieldsPrefix, nestedEnvironmentVariables); err != nil {
				return err
			}
		case reflect.Struct:
			if err := OverrideFromEnvMap(ef.Addr().Interface(), nestedFieldsPrefix, nestedEnvironmentVariables); err != nil {
				return err
			}
		}
	}

	return nil
}

func transformEnvironmentVariablesToMap(environmentVariables []string) map[string]string {
	environmentVariablesMap := make(map[string]string)

	for _, ev := range environmentVariables {
		key, value, _ := strings.Cut(ev, "=")
		environmentVariablesMap[key] = value
	}

	return environmentVariablesMap
}

func filterEnvironmentVariablesByPrefix(environmentVariables map[string]string, prefix string) map[string]string {
	filtered := make(map[string]string)

	for key, value := range environmentVariables {
		if strings.HasPrefix(key, prefix) {
			filtered[key] = value
		}
	}

	return filtered
}

func processField(v string, ef reflect.Value) error {
	for ef.Type().Kind() == reflect.Ptr {
		if ef.IsNil() {
			ef.Set(reflect.New(ef.Type().Elem()))
		}
		ef = ef.Elem()
	}

	if v == "" {
		return nil
	}

	tf := ef.Type()

	switch tf.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		ef.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		i, err := strconv.ParseInt(v, 0, tf.Bits())
		if err != nil {
			return err
		}
		ef.SetInt(i)
	case reflect.Int64:
		if tf.PkgPath() == "time" && tf.Name() == "Duration" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			ef.SetInt(int64(d))
			return nil
		}
		i, err := strconv.ParseInt(v, 0, tf.Bits())
		if err != nil {
			return err
		}
		ef.SetInt(i)
	case reflect.String:
		ef.SetString(v)
	case reflect.Slice:
		vals := strings.Split(v, ",")
		s := reflect.MakeSlice(tf, len(vals), len(vals))
		for i, val := range vals {
			val = strings.TrimSpace(val)
			if err := processField(val, s.Index(i)); err != nil {
				return fmt.Errorf("%s: %w", val, err)
			}
		}
		ef.Set(s)
	default:
		return fmt.Errorf("unsupported field kind %v", tf.Kind())
	}

	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"aiko-vesting/internal/types"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("flag"); name != "" {
			return "--" + name
		}
		return fld.Name
	})
	if err := validate.RegisterValidation("pubkey", isPublicKey); err != nil {
		panic(err)
	}

	trans, _ = ut.New(en.New()).GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(err)
	}
	err := validate.RegisterTranslation("pubkey", trans,
		func(ut ut.Translator) error {
			return ut.Add("pubkey", "{0} must be a base58 encoded public key", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("pubkey", fe.Field())
			return msg
		},
	)
	if err != nil {
		panic(err)
	}
}

func isPublicKey(fl validator.FieldLevel) bool {
	_, err := solana.PublicKeyFromBase58(fl.Field().String())
	return err == nil
}

// checkInput validates req and reports every violation as an input error.
func checkInput(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(types.ErrInput, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, msg := range verrs.Translate(trans) {
		msgs = append(msgs, msg)
	}
	sort.Strings(msgs)
	return errors.Wrap(types.ErrInput, strings.Join(msgs, "; "))
}

func printResult(w io.Writer, v interface{}) error {
	format := viper.GetString("output")
	var (
		out []byte
		err error
	)
	switch format {
	case "", "json":
		out, err = json.MarshalIndent(v, "", "  ")
	case "yaml":
		out, err = yaml.Marshal(v)
	default:
		return errors.Wrapf(types.ErrInput, "unknown output format %q", format)
	}
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

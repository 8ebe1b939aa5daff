package builders

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/util/labels"
	"github.com/imamik/vectordb/internal/util/naming"
)

const ComponentPasswordSecret = "master-password"

// UsernameSecretKey is the key holding the master username in generated secrets.
const UsernameSecretKey = "username"

// PasswordSecret holds the generated master credentials. It is the only
// descriptor that carries the password; the cluster references it by name.
func PasswordSecret(cfg *config.Config, password string) (*descriptor.Descriptor, error) {
	if password == "" {
		return nil, fmt.Errorf("password secret: empty password")
	}
	name := naming.PasswordSecret(cfg.Claim, cfg.Environment)
	lbls := labels.NewLabelBuilder(cfg.Claim, cfg.Environment).
		WithComponent(ComponentPasswordSecret).
		WithKind(descriptor.KindSecret.Kind).
		WithTier(labels.TierSecurity).
		Build()

	secret := &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: cfg.Namespace},
		Type:       corev1.SecretTypeOpaque,
		Data: map[string][]byte{
			UsernameSecretKey:        []byte(cfg.Database.MasterUsername),
			config.PasswordSecretKey: []byte(password),
		},
	}
	obj, err := runtime.DefaultUnstructuredConverter.ToUnstructured(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to convert password secret: %w", err)
	}
	delete(obj, "apiVersion")
	delete(obj, "kind")
	delete(obj, "metadata")

	d := descriptor.New(name, descriptor.KindSecret, lbls, obj)
	d.Namespace = cfg.Namespace
	d.Sensitive = true
	return d, nil
}

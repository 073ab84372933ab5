package extract

import "testing"

func TestValidFullNameAccepts(t *testing.T) {
	cases := [][2]string{
		{"山田", "太郎"},
		{"佐藤", "はな"},
		{"スミス", "ジョン"},
		{"Smith", "John"},
		{"森田", "蘭"}, // a single short token is fine as long as both are not
	}
	for _, c := range cases {
		if !ValidFullName(c[0], c[1], RolePatient) {
			t.Fatalf("expected %q %q accepted", c[0], c[1])
		}
	}
}

func TestValidFullNameRejectsDigits(t *testing.T) {
	if ValidFullName("山田", "1丁目", RolePatient) {
		t.Fatalf("digit token must be rejected")
	}
	if ValidFullName("３号室", "太郎", RolePatient) {
		t.Fatalf("full-width digit token must be rejected")
	}
}

func TestValidFullNameRejectsInstitutions(t *testing.T) {
	cases := [][2]string{
		{"さくら治療院", "御中"},
		{"山田", "クリニック"},
		{"横浜市", "太郎"},
		{"中央病院", "受付"},
	}
	for _, c := range cases {
		if ValidFullName(c[0], c[1], RoleOther) {
			t.Fatalf("expected institution pair %q %q rejected", c[0], c[1])
		}
	}
}

func TestValidFullNameRejectsAddressFragments(t *testing.T) {
	if ValidFullName("新宿区", "太郎", RolePatient) {
		t.Fatalf("address fragment must be rejected")
	}
	if ValidFullName("山田", "グランドハイツ", RolePatient) {
		t.Fatalf("building name must be rejected")
	}
}

func TestValidFullNameRejectsLabelWords(t *testing.T) {
	cases := [][2]string{
		{"氏名", "太郎"},
		{"患者", "氏名"},
		{"被保険者", "山田"},
	}
	for _, c := range cases {
		if ValidFullName(c[0], c[1], RolePatient) {
			t.Fatalf("expected label pair %q %q rejected", c[0], c[1])
		}
	}
}

func TestValidFullNamePatientRoleExclusions(t *testing.T) {
	if ValidFullName("生年月日", "太郎", RolePatient) {
		t.Fatalf("patient-role exclusion must reject birth date label")
	}
	// The same bare token is allowed for non-patient roles.
	if !ValidFullName("性別", "太郎", RoleOther) {
		t.Fatalf("patient exclusions must not apply to other roles")
	}
}

func TestValidFullNameRejectsDoubleSingleChar(t *testing.T) {
	if ValidFullName("森", "蘭", RolePatient) {
		t.Fatalf("two single-character tokens are noise")
	}
}

func TestValidFullNameRejectsEmpty(t *testing.T) {
	if ValidFullName("", "太郎", RolePatient) || ValidFullName("山田", "", RolePatient) {
		t.Fatalf("empty token must be rejected")
	}
}

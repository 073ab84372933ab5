package extract

import "testing"

func TestDoctorLabelWindow(t *testing.T) {
	if got := Doctor("担当医: 田中 一郎"); got != "田中一郎" {
		t.Fatalf("Doctor() = %q, want 田中一郎", got)
	}
}

func TestDoctorTrailingHonorific(t *testing.T) {
	if got := Doctor("ご紹介いただいた 田中 一郎先生に確認します"); got != "田中一郎" {
		t.Fatalf("Doctor() = %q, want 田中一郎", got)
	}
}

func TestDoctorTrailingSenseiNotALeadingLabel(t *testing.T) {
	// 先生 trails the clinician's name here; the text after it must not
	// be scanned as if 先生 were a label preceding a name.
	if got := Doctor("高橋 誠先生より 山本 花子様の件でご連絡します"); got != "高橋誠" {
		t.Fatalf("Doctor() = %q, want 高橋誠", got)
	}
}

func TestDoctorRequiresTwoTokens(t *testing.T) {
	if got := Doctor("担当医: 田中"); got != "" {
		t.Fatalf("Doctor() = %q, want empty for single token", got)
	}
}

func TestDoctorEmptyText(t *testing.T) {
	if got := Doctor(""); got != "" {
		t.Fatalf("Doctor(\"\") = %q", got)
	}
}

func TestClinicSuffixScan(t *testing.T) {
	if got := Clinic("発行元 さくら治療院 東京都新宿区"); got != "さくら治療院" {
		t.Fatalf("Clinic() = %q, want さくら治療院", got)
	}
}

func TestClinicExplicitLabelWins(t *testing.T) {
	text := "医療機関名: あおば整骨院\nさくら治療院からの紹介"
	if got := Clinic(text); got != "あおば整骨院" {
		t.Fatalf("Clinic() = %q, want あおば整骨院", got)
	}
}

func TestClinicPrefersOnchuBoundary(t *testing.T) {
	text := "さくらクリニック 御中\n医療法人あおばクリニックより"
	if got := Clinic(text); got != "さくらクリニック" {
		t.Fatalf("Clinic() = %q, want さくらクリニック", got)
	}
}

func TestClinicAbsent(t *testing.T) {
	if got := Clinic("請求書 合計 10,000円"); got != "" {
		t.Fatalf("Clinic() = %q, want empty", got)
	}
}

func TestInvoiceAddresseeLabel(t *testing.T) {
	if got := InvoiceAddressee("請求先: 株式会社あおぞら"); got != "株式会社あおぞら" {
		t.Fatalf("InvoiceAddressee() = %q", got)
	}
}

func TestInvoiceAddresseeOnchuWithoutClinicSuffix(t *testing.T) {
	if got := InvoiceAddressee("株式会社あおぞら 御中"); got != "株式会社あおぞら" {
		t.Fatalf("InvoiceAddressee() = %q", got)
	}
}

func TestInvoiceAddresseeFallsBackToClinic(t *testing.T) {
	if got := InvoiceAddressee("下記の通りご請求申し上げます さくら治療院"); got != "さくら治療院" {
		t.Fatalf("InvoiceAddressee() = %q", got)
	}
}

func TestStaffSingleTokenAccepted(t *testing.T) {
	if got := Staff("担当者: 佐藤"); got != "佐藤" {
		t.Fatalf("Staff() = %q, want 佐藤", got)
	}
}

func TestClientAndDept(t *testing.T) {
	text := "営業先: 株式会社あおぞら\n担当区: 東エリア"
	if got := Client(text); got != "株式会社あおぞら" {
		t.Fatalf("Client() = %q", got)
	}
	if got := ClientDept(text); got != "東エリア" {
		t.Fatalf("ClientDept() = %q", got)
	}
}

func TestClientAbsent(t *testing.T) {
	if got := Client("保険証のコピー"); got != "" {
		t.Fatalf("Client() = %q, want empty", got)
	}
}

func TestDateISO(t *testing.T) {
	if got := Date("施術日: 2024年3月7日"); got != "20240307" {
		t.Fatalf("Date() = %q, want 20240307", got)
	}
}

func TestDateDashAndSlash(t *testing.T) {
	if got := Date("発行日 2023-11-02"); got != "20231102" {
		t.Fatalf("Date() = %q", got)
	}
	if got := Date("2023/1/9 請求"); got != "20230109" {
		t.Fatalf("Date() = %q", got)
	}
}

func TestDateEraConversion(t *testing.T) {
	if got := Date("令和6年3月7日"); got != "20240307" {
		t.Fatalf("Date() = %q, want 20240307", got)
	}
	if got := Date("平成31年4月30日"); got != "20190430" {
		t.Fatalf("Date() = %q, want 20190430", got)
	}
	if got := Date("令和元年5月1日"); got != "20190501" {
		t.Fatalf("Date() = %q, want 20190501", got)
	}
}

func TestDateRejectsImpossible(t *testing.T) {
	if got := Date("2024年13月40日"); got != "" {
		t.Fatalf("Date() = %q, want empty", got)
	}
}

func TestDateAbsent(t *testing.T) {
	if got := Date("日付の記載なし"); got != "" {
		t.Fatalf("Date() = %q, want empty", got)
	}
}

func TestAllEmptyInput(t *testing.T) {
	fields := All("")
	if fields != (All("")) {
		t.Fatalf("All must be deterministic")
	}
	empty := All("")
	if empty.Patient != "" || empty.Doctor != "" || empty.Clinic != "" ||
		empty.Addressee != "" || empty.Staff != "" || empty.Client != "" ||
		empty.ClientDept != "" || empty.Date != "" {
		t.Fatalf("All(\"\") must leave every field absent: %+v", empty)
	}
}
